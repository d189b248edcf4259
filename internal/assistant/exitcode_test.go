package assistant

import (
	"fmt"
	"os/exec"
	"testing"
)

func TestExitCode_Nil(t *testing.T) {
	code, err := exitCode(nil)
	if code != 0 || err != nil {
		t.Fatalf("code=%d, err=%v", code, err)
	}
}

func TestExitCode_LaunchError(t *testing.T) {
	code, err := exitCode(fmt.Errorf("exec: not found"))
	if code != 0 || err == nil {
		t.Fatalf("code=%d, err=%v", code, err)
	}
}

func TestExitCode_ExitError(t *testing.T) {
	runErr := exec.Command("bash", "-c", "exit 7").Run()
	code, err := exitCode(runErr)
	if code != 7 || err != nil {
		t.Fatalf("code=%d, err=%v", code, err)
	}
}
