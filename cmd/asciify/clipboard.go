package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// copyToClipboard asks the terminal on out to place text on the system
// clipboard with an OSC 52 sequence.
func copyToClipboard(out *os.File, text string) error {
	if !term.IsTerminal(int(out.Fd())) {
		return errors.New("clipboard copy needs a terminal on stdout")
	}
	if err := writeOSC52(out, text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Copied to clipboard")
	return nil
}

// writeOSC52 writes ESC ] 52 ; c ; <base64> BEL.
func writeOSC52(w io.Writer, text string) error {
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	_, err := io.WriteString(w, "\x1b]52;c;"+encoded+"\x07")
	return err
}
