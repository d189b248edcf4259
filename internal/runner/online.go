package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// ProgramizURL is the online C++ compiler used when no local build works.
const ProgramizURL = "https://www.programiz.com/cpp-programming/online-compiler/"

const onlineTimeout = 30 * time.Second

// programiz opens the online compiler in a browser, loads code into its
// editor and presses Run. The browser is left open for the user.
func (r *Runner) programiz(ctx context.Context, code string) error {
	fmt.Fprintln(r.Stdout, "Launching browser automation for the Programiz C++ compiler...")

	controlURL, err := launcher.New().Headless(r.Config.Headless).Leakless(false).Launch()
	if err != nil {
		return fmt.Errorf("launch chrome: %w", err)
	}
	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connect to chrome: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: ProgramizURL})
	if err != nil {
		return fmt.Errorf("open page: %w", err)
	}
	page = page.Timeout(onlineTimeout)

	if _, err := page.Element("#editor"); err != nil {
		return fmt.Errorf("editor not found: %w", err)
	}
	if _, err := page.Eval(`(code) => ace.edit("editor").setValue(code)`, code); err != nil {
		return fmt.Errorf("inject code: %w", err)
	}
	btn, err := page.ElementR("button", "Run")
	if err != nil {
		return fmt.Errorf("run button not found: %w", err)
	}
	if err := btn.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click run: %w", err)
	}

	fmt.Fprintln(r.Stdout, "Code submitted. Check the browser window for output.")
	return nil
}
