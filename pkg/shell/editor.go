package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/source-academy/scm-slang/pkg/store/storedefs"
)

// The interface the line editors satisfy.
type editor interface {
	// ReadLine shows the prompt and reads a line without the line ending. It
	// returns errLineAborted if the user discards the line, and io.EOF at the
	// end of input.
	ReadLine(prompt string) (string, error)
	// AddHistory records a chunk of code in the editor's own history.
	AddHistory(code string)
	Close() error
}

var errLineAborted = errors.New("line aborted")

// minEditor reads lines from a file that is not a terminal.
type minEditor struct {
	in  *bufio.Reader
	out io.Writer
}

func newMinEditor(in, out *os.File) *minEditor {
	return &minEditor{bufio.NewReader(in), out}
}

func (ed *minEditor) ReadLine(prompt string) (string, error) {
	fmt.Fprint(ed.out, prompt)
	line, err := ed.in.ReadString('\n')
	if err == io.EOF && line != "" {
		// The last line has no line ending; report EOF on the next call.
		err = nil
	}
	return strings.TrimRight(line, "\r\n"), err
}

func (ed *minEditor) AddHistory(string) {}

func (ed *minEditor) Close() error { return nil }

// linerEditor is a line editor for terminals. It always uses the process's
// stdin and stdout.
type linerEditor struct {
	state *liner.State
}

func newLinerEditor(st storedefs.Store, keep int) *linerEditor {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetMultiLineMode(true)
	if st != nil {
		for _, cmd := range loadHistory(st, keep) {
			state.AppendHistory(oneLine(cmd.Text))
		}
		state.SetCompleter(func(line string) []string {
			return historyMatches(st, line, maxCompletions)
		})
	}
	return &linerEditor{state}
}

// Returns the last keep entries of the history, or all of them if keep is not
// positive.
func loadHistory(st storedefs.Store, keep int) []storedefs.Cmd {
	upto, err := st.NextCmdSeq()
	if err != nil {
		logger.Println("cannot load history:", err)
		return nil
	}
	cmds, err := st.CmdsWithSeq(0, upto)
	if err != nil {
		logger.Println("cannot load history:", err)
	}
	if keep > 0 && len(cmds) > keep {
		cmds = cmds[len(cmds)-keep:]
	}
	return cmds
}

const maxCompletions = 20

// Returns up to limit distinct history entries that start with prefix, most
// recent first. This backs Tab completion in the terminal editor.
func historyMatches(st storedefs.Store, prefix string, limit int) []string {
	upto, err := st.NextCmdSeq()
	if err != nil {
		logger.Println("cannot search history:", err)
		return nil
	}
	var matches []string
	seen := make(map[string]bool)
	for len(matches) < limit {
		cmd, err := st.PrevCmd(upto, prefix)
		if err != nil {
			if !errors.Is(err, storedefs.ErrNoMatchingCmd) {
				logger.Println("cannot search history:", err)
			}
			break
		}
		upto = cmd.Seq
		if text := oneLine(cmd.Text); !seen[text] {
			seen[text] = true
			matches = append(matches, text)
		}
	}
	return matches
}

// liner recalls history line by line.
func oneLine(code string) string {
	return strings.ReplaceAll(code, "\n", " ")
}

func (ed *linerEditor) ReadLine(prompt string) (string, error) {
	line, err := ed.state.Prompt(prompt)
	if err == liner.ErrPromptAborted {
		return "", errLineAborted
	}
	return line, err
}

func (ed *linerEditor) AddHistory(code string) {
	ed.state.AppendHistory(oneLine(code))
}

func (ed *linerEditor) Close() error {
	return ed.state.Close()
}
