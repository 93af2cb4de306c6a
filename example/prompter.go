package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/adrg/xdg"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

type prompter struct {
	readliner *readline.Instance
}

func newPrompter(app string) (*prompter, error) {
	historyFile, err := xdg.CacheFile(fmt.Sprintf("%s/demo.history", app))
	if err != nil {
		historyFile = ""
	}

	l, err := readline.NewEx(&readline.Config{
		Prompt:            color.CyanString("> "),
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return nil, err
	}

	return &prompter{readliner: l}, nil
}

func (p *prompter) Readline() (string, bool, error) {
	line, err := p.readliner.Readline()
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return strings.TrimSpace(line), true, nil
}

func (p *prompter) Close() error {
	return p.readliner.Close()
}
