package main

import (
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestConfigureLogLevelFromEnv(t *testing.T) {
	testCases := []struct {
		envVal      string
		expectedLvl zerolog.Level
	}{
		{"", zerolog.Disabled},
		{"0", zerolog.Disabled},
		{"false", zerolog.Disabled},
		{"1", zerolog.DebugLevel},
		{"true", zerolog.DebugLevel},
		{"yes please", zerolog.DebugLevel},
	}

	for _, tc := range testCases {
		t.Setenv("LUMINOX_DEBUG", tc.envVal)
		configureLogLevelFromEnv()
		if zerolog.GlobalLevel() != tc.expectedLvl {
			t.Errorf("LUMINOX_DEBUG=%q: expected log level %v, got %v",
				tc.envVal, tc.expectedLvl, zerolog.GlobalLevel())
		}
	}
}

func TestHandleInterrupt(t *testing.T) {
	stopChan := setupInterruptListener()
	exitCalled := make(chan int, 1)
	logged := make(chan string, 1)

	go handleInterrupt(stopChan, func(msg string) { logged <- msg }, func(code int) { exitCalled <- code })
	stopChan <- os.Interrupt

	select {
	case code := <-exitCalled:
		if code != 130 {
			t.Errorf("expected exit code 130, got %d", code)
		}
		if msg := <-logged; msg != "Interrupt signal received. Exiting..." {
			t.Errorf("unexpected log message %q", msg)
		}
	case <-time.After(time.Second):
		t.Error("exit function was not called on interrupt")
	}
}

func TestInterruptListener_Sigterm(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("SIGTERM cannot be sent to a process on windows")
	}
	stopChan := setupInterruptListener()
	t.Cleanup(func() { signal.Stop(stopChan) })

	self, err := os.FindProcess(os.Getpid())
	if err != nil {
		t.Fatalf("failed to find own process: %v", err)
	}
	if err := self.Signal(syscall.SIGTERM); err != nil {
		t.Fatalf("failed to send SIGTERM: %v", err)
	}

	select {
	case sig := <-stopChan:
		if sig != syscall.SIGTERM {
			t.Errorf("expected SIGTERM, got %v", sig)
		}
	case <-time.After(time.Second):
		t.Fatal("SIGTERM was not delivered to the listener")
	}

	exitCalled := make(chan int, 1)
	stopChan <- syscall.SIGTERM
	go handleInterrupt(stopChan, func(string) {}, func(code int) { exitCalled <- code })
	select {
	case code := <-exitCalled:
		if code != 130 {
			t.Errorf("expected exit code 130, got %d", code)
		}
	case <-time.After(time.Second):
		t.Error("exit function was not called on SIGTERM")
	}
}
