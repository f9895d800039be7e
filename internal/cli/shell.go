package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"pkt.systems/pslog"

	"github.com/idilsaglam/cloon/internal/feed"
	"github.com/idilsaglam/cloon/internal/session"
	"github.com/idilsaglam/cloon/internal/store/queue"
	"github.com/idilsaglam/cloon/internal/ui"
)

const shellPrompt = "cloon> "

var errQuit = errors.New("quit")

// runShell reads one command per line until EOF or quit. Command errors are
// reported and the session keeps going.
func runShell(ctx context.Context, sess *session.Session, opt Options) int {
	log := pslog.Ctx(ctx)
	out, errw := opt.Stdout, opt.Stderr

	// badge strip follows the queue, like the avatar screen's counter
	cancel := sess.Queue().Subscribe(func(e queue.Event) {
		fmt.Fprintln(out, ui.Badge(e.Items))
	})
	defer cancel()

	sc := bufio.NewScanner(opt.Stdin)
	fmt.Fprint(out, shellPrompt)
	for sc.Scan() {
		if ctx.Err() != nil {
			break
		}
		fields := strings.Fields(sc.Text())
		if len(fields) > 0 {
			err := shellCommand(sess, fields[0], fields[1:], out)
			if errors.Is(err, errQuit) {
				return 0
			}
			if err != nil {
				ui.Fail(errw, err.Error())
			}
		}
		fmt.Fprint(out, shellPrompt)
	}
	fmt.Fprintln(out)
	if err := sc.Err(); err != nil {
		log.Error("shell input", "err", err)
		ui.Fail(errw, "read: "+err.Error())
		return 1
	}
	return 0
}

func shellCommand(sess *session.Session, cmd string, a []string, out io.Writer) error {
	switch cmd {
	case "help", "?":
		printShellHelp(out)
	case "quit", "exit", "q":
		return errQuit

	case "ls":
		lines := []string{ui.Badge(sess.Queue().Items()), ""}
		lines = append(lines, queueLines(sess)...)
		f := sess.Feed()
		lines = append(lines, "", ui.Current().Muted.Render("feed "+ui.ProgressBar(f.Total()-f.Remaining(), f.Total(), 16)))
		ui.Panel(out, lines)

	case "try":
		if len(a) == 0 {
			return errors.New("usage: try <id...>")
		}
		for _, id := range a {
			if err := sess.TryOn(id); err != nil {
				return err
			}
		}

	case "add":
		if len(a) == 0 {
			return errors.New("usage: add <image> [name...]")
		}
		it := sess.AddImage(a[0], strings.Join(a[1:], " "))
		ui.OK(out, "added "+it.ID)

	case "toggle":
		if len(a) != 1 {
			return errors.New("usage: toggle <id>")
		}
		in, err := sess.ToggleCloset(a[0])
		if err != nil {
			return err
		}
		if in {
			ui.OK(out, a[0]+" tried on")
		} else {
			ui.OK(out, a[0]+" taken off")
		}

	case "feed":
		if len(a) == 1 && a[0] == "reset" {
			sess.Feed().Reset()
		}
		g, ok := sess.Feed().Current()
		if !ok {
			fmt.Fprintln(out, ui.Current().Muted.Render("feed is empty (reset with `feed reset`)"))
			return nil
		}
		fmt.Fprintf(out, "%s %s %s\n", ui.Current().Accent.Render("card"), g.ID, g.Title())

	case "swipe":
		if len(a) != 1 {
			return errors.New("usage: swipe left|right")
		}
		dir, err := feed.ParseDirection(a[0])
		if err != nil {
			return err
		}
		g, ok := sess.Feed().Swipe(dir)
		if !ok {
			return errors.New("feed is empty")
		}
		if dir == feed.Right {
			ui.OK(out, "queued "+g.ID)
		} else {
			fmt.Fprintln(out, ui.Current().Muted.Render("skipped "+g.ID))
		}

	case "rm":
		if len(a) == 0 {
			return errors.New("usage: rm <id...>")
		}
		return sess.DeleteSelected(a)

	case "clear":
		sess.Clear()

	case "apply":
		if len(a) != 1 {
			return errors.New("usage: apply <id>")
		}
		if err := sess.Apply(a[0]); err != nil {
			return err
		}
		ui.OK(out, "applied "+a[0])

	case "share":
		text, err := sess.Share(a)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, text)

	default:
		return fmt.Errorf("unknown command %q (try `help`)", cmd)
	}
	return nil
}

func printShellHelp(w io.Writer) {
	fmt.Fprint(w, `Commands:
  ls                     Show the tried-on queue
  try <id...>            Queue catalog garments
  add <image> [name...]  Queue an image that is not in the catalog
  toggle <id>            Closet tap: queue or unqueue a garment
  feed [reset]           Show the top feed card
  swipe left|right       Skip or queue the top feed card
  rm <id...>             Remove items from the queue
  clear                  Empty the queue
  apply <id>             Put a queued item on the avatar
  share <id...>          Copy share text for the first id
  quit                   Leave
`)
}
