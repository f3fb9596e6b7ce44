package support

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/awnumar/memguard"
	"golang.org/x/term"
)

func ReadPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", err
	}
	fmt.Println() // Add a newline after the password entry
	return strings.TrimSpace(string(bytePassword)), nil
}

// PromptSecret reads a secret from the terminal without echo into locked
// memory. The caller must Destroy the buffer.
func PromptSecret(prompt string) (*memguard.LockedBuffer, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, err
	}
	return memguard.NewBufferFromBytes(raw), nil
}

// ReadSecret reads r to the end, drops one trailing line break and returns
// the rest in locked memory. The caller must Destroy the buffer.
func ReadSecret(r io.Reader) (*memguard.LockedBuffer, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(raw)

	trimmed := bytes.TrimSuffix(raw, []byte("\n"))
	trimmed = bytes.TrimSuffix(trimmed, []byte("\r"))
	out := make([]byte, len(trimmed))
	copy(out, trimmed)
	return memguard.NewBufferFromBytes(out), nil
}
