package cmd

import (
	"os"
	"testing"

	"github.com/fatih/color"
)

func TestMain(m *testing.M) {
	// Command output is compared verbatim
	color.NoColor = true
	os.Exit(m.Run())
}
