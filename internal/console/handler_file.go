package console

import (
	"context"
	"fmt"

	"github.com/PixPMusic/pushmap/internal/config"
	"github.com/PixPMusic/pushmap/internal/engine"
	"github.com/PixPMusic/pushmap/internal/mapping"
)

func pathArg(env Env, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if env.MappingFile == "" {
		return "", fmt.Errorf("no mapping file configured")
	}
	return env.MappingFile, nil
}

// SaveHandler writes the mappings to a file
type SaveHandler struct {
	env Env
}

func (h *SaveHandler) Execute(ctx context.Context, args []string) (string, error) {
	path, err := pathArg(h.env, args)
	if err != nil {
		return "", err
	}

	var doc mapping.Document
	if err := h.env.Runner.Do(ctx, func(e *engine.Engine) { doc = e.Document() }); err != nil {
		return "", err
	}
	doc.InstanceID = h.env.InstanceID
	doc.MIDI = h.env.Ports

	if err := config.SaveDocument(path, doc); err != nil {
		return "", err
	}
	return fmt.Sprintf("saved %s", path), nil
}

func (h *SaveHandler) Usage() string {
	return "[<file.json|file.yaml>]"
}

// LoadHandler replaces the mappings with a file's contents
type LoadHandler struct {
	env Env
}

func (h *LoadHandler) Execute(ctx context.Context, args []string) (string, error) {
	path, err := pathArg(h.env, args)
	if err != nil {
		return "", err
	}

	doc, err := config.LoadDocument(path)
	if err != nil {
		return "", err
	}
	if err := h.env.Runner.Do(ctx, func(e *engine.Engine) { e.Load(doc) }); err != nil {
		return "", err
	}
	return fmt.Sprintf("loaded %s", path), nil
}

func (h *LoadHandler) Usage() string {
	return "[<file.json|file.yaml>]"
}
