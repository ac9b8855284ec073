package shell

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/source-academy/scm-slang/pkg/diag"
	"github.com/source-academy/scm-slang/pkg/eval"
	"github.com/source-academy/scm-slang/pkg/eval/vals"
	"github.com/source-academy/scm-slang/pkg/parse"
	"github.com/source-academy/scm-slang/pkg/store"
	"github.com/source-academy/scm-slang/pkg/sys"
)

// InteractConfig keeps configuration for the interactive mode.
type InteractConfig struct {
	Evaler *eval.Evaler
	// Path of rc.scm. Empty means no rc file.
	RC     string
	Config *Config
}

// Interact runs an interactive session: it reads chunks of code, evaluates
// them in the same Evaler and prints the display strings of their values.
func Interact(fds [3]*os.File, cfg *InteractConfig) {
	ev, conf := cfg.Evaler, cfg.Config
	if ev == nil {
		ev = eval.NewEvaler()
	}
	if conf == nil {
		conf = defaultConfig()
	}

	st := openStore(fds[2], conf)
	if st != nil {
		defer st.Close()
	}

	var ed editor
	if fds[0] == os.Stdin && sys.IsATTY(fds[0].Fd()) {
		ed = newLinerEditor(st, conf.HistorySize)
	} else {
		ed = newMinEditor(fds[0], fds[2])
	}
	defer ed.Close()

	if cfg.RC != "" {
		err := sourceRC(ev, fds, cfg.RC, conf)
		if err != nil {
			showError(fds[2], err)
		}
	}

	for chunkNum := 1; ; chunkNum++ {
		code, err := readChunk(ed, conf)
		if err == io.EOF && code == "" {
			break
		} else if err != nil && err != io.EOF {
			fmt.Fprintln(fds[2], "Editor error:", err)
			break
		}
		if strings.TrimSpace(code) == "" {
			continue
		}

		ed.AddHistory(code)
		if st != nil {
			if _, err := st.AddCmd(code); err != nil {
				logger.Println("cannot add to history:", err)
			}
		}

		src := parse.Source{Name: fmt.Sprintf("[repl %d]", chunkNum), Code: code}
		v, err := evalInTTY(ev, fds, src, conf)
		if err != nil {
			showError(fds[2], err)
			continue
		}
		if s := vals.Repr(v); s != "" {
			fmt.Fprintln(fds[1], s)
		}
	}
}

// Reads lines until they form code that is complete. The chunk is returned
// without its final line ending. At the end of input, any incomplete code
// read so far is returned together with io.EOF.
func readChunk(ed editor, conf *Config) (string, error) {
	var sb strings.Builder
	prompt := conf.Prompt
	for {
		line, err := ed.ReadLine(prompt)
		if err == errLineAborted {
			sb.Reset()
			prompt = conf.Prompt
			continue
		}
		if err != nil {
			return sb.String(), err
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line)
		_, parseErr := parse.Parse(parse.Source{Name: "[input]", Code: sb.String()})
		if !diag.IsPartial(parseErr) {
			return sb.String(), nil
		}
		prompt = conf.ContinuationPrompt
	}
}

// Opens the history database. Failure is reported as a warning; the session
// continues without history.
func openStore(stderr io.Writer, conf *Config) store.DBStore {
	path, err := dbPath(conf)
	if err != nil {
		diag.Complainf(stderr, "Warning: cannot create history directory: %v", err)
		return nil
	}
	st, err := store.NewStore(path)
	if err != nil {
		diag.Complainf(stderr, "Warning: cannot open history database: %v", err)
		return nil
	}
	if conf.HistorySize > 0 {
		if err := st.TrimCmds(conf.HistorySize); err != nil {
			logger.Println("cannot trim history:", err)
		}
	}
	return st
}

func sourceRC(ev *eval.Evaler, fds [3]*os.File, rcPath string, conf *Config) error {
	err := evalFile(ev, fds, rcPath, conf)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
