package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetup(t *testing.T) {
	defer Log.SetLevel(logrus.InfoLevel)

	Setup("debug")
	if Log.GetLevel() != logrus.DebugLevel {
		t.Fatalf("expected debug, got %s", Log.GetLevel())
	}
	Setup("not-a-level")
	if Log.GetLevel() != logrus.DebugLevel {
		t.Fatalf("bad level changed the logger to %s", Log.GetLevel())
	}
	Setup("")
	if Log.GetLevel() != logrus.DebugLevel {
		t.Fatal("empty level changed the logger")
	}
	if got := Component("sfx").Data["component"]; got != "sfx" {
		t.Fatalf("expected component field, got %v", got)
	}
}
