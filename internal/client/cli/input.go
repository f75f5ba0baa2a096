package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/notflix/internal/client/client"
	"github.com/dmitrijs2005/notflix/internal/client/models"
	"github.com/dmitrijs2005/notflix/internal/common"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints prompt to w and reads a password from the terminal
// without echo. The caller should wipe the returned slice.
func GetPassword(prompt string, w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

type usageError string

func (e usageError) Error() string { return "usage: " + string(e) }

// parseID reads the numeric id in args[0].
func parseID(args []string, usage string) (int64, error) {
	if len(args) == 0 {
		return 0, usageError(usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, usageError(usage)
	}
	return id, nil
}

// parseKind reads the optional media kind in args[1]; empty when absent.
func parseKind(args []string, usage string) (models.MediaKind, error) {
	if len(args) < 2 {
		return "", nil
	}
	switch k := models.MediaKind(strings.ToLower(args[1])); k {
	case models.Movie, models.TV:
		return k, nil
	default:
		return "", usageError(usage)
	}
}

// describe turns an error into a line for the user.
func describe(err error) string {
	var ve *common.ValidationError
	var ue usageError
	switch {
	case errors.As(err, &ue):
		return ue.Error()
	case errors.As(err, &ve):
		return ve.Error()
	case errors.Is(err, common.ErrorUnauthorized):
		return "invalid email or password"
	case errors.Is(err, common.ErrorAlreadyExists):
		return "already exists"
	case errors.Is(err, common.ErrorNotFound):
		return "not found"
	case errors.Is(err, common.ErrNoSession):
		return "please login first"
	case errors.Is(err, common.ErrNoProfile):
		return "no profile selected"
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable, try again later"
	default:
		return err.Error()
	}
}
