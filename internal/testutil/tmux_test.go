package testutil

import "testing"

func TestStartTmuxServerLifecycle(t *testing.T) {
	srv := StartTmuxServer(t)
	if out := srv.Run(t, "list-sessions", "-F", "#{session_name}"); out != "kaomoji-picker-test" {
		t.Fatalf("unexpected sessions %q", out)
	}
	srv.AssertNoServerCrash(t)
}
