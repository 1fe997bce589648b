// SPDX-License-Identifier: MPL-2.0

package loader

import (
	"context"
	"strings"
	"sync"
)

type (
	// Command is a console command contributed by a mod. Mods register
	// implementations explicitly from their own initialization code; there
	// is no scanning of loaded code for marked types.
	Command interface {
		// CommandName is the invocation name, unique across all mods.
		CommandName() string
		// Execute runs the command and returns its output.
		Execute(ctx context.Context, args []string) (string, error)
	}

	// ChatProcessor inspects chat messages and may rewrite them. Processors
	// run in registration order; the first one that handles a message wins.
	ChatProcessor interface {
		// ProcessorName identifies the processor, unique across all mods.
		ProcessorName() string
		// Process returns the (possibly rewritten) message and whether this
		// processor handled it.
		Process(ctx context.Context, message string) (string, bool)
	}

	capabilityEntry[T any] struct {
		mod  string
		impl T
	}

	// capabilityRegistry is a typed, insertion-ordered registry with unique
	// names. kind is used in error messages ("command", "chat processor").
	capabilityRegistry[T any] struct {
		kind string

		mu     sync.RWMutex
		order  []string
		byName map[string]capabilityEntry[T]
	}
)

func newCapabilityRegistry[T any](kind string) *capabilityRegistry[T] {
	return &capabilityRegistry[T]{
		kind:   kind,
		byName: make(map[string]capabilityEntry[T]),
	}
}

func (r *capabilityRegistry[T]) register(mod, name string, impl T) error {
	key := strings.ToLower(strings.TrimSpace(name))
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, dup := r.byName[key]; dup {
		return &DuplicateCapabilityError{Kind: r.kind, Name: key, FirstMod: existing.mod}
	}
	r.byName[key] = capabilityEntry[T]{mod: mod, impl: impl}
	r.order = append(r.order, key)
	return nil
}

func (r *capabilityRegistry[T]) get(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return e.impl, ok
}

func (r *capabilityRegistry[T]) all() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name].impl)
	}
	return out
}

// RegisterCommand registers a console command on behalf of a mod. Command
// names are case-insensitive and unique across all mods; a duplicate name
// returns a DuplicateCapabilityError naming the first registrant.
func (l *Loader) RegisterCommand(modID string, cmd Command) error {
	return l.commands.register(NormalizeModId(modID), cmd.CommandName(), cmd)
}

// Command returns the registered command with the given name.
func (l *Loader) Command(name string) (Command, bool) {
	return l.commands.get(name)
}

// Commands returns every registered command in registration order.
func (l *Loader) Commands() []Command {
	return l.commands.all()
}

// RegisterChatProcessor registers a chat processor on behalf of a mod.
func (l *Loader) RegisterChatProcessor(modID string, p ChatProcessor) error {
	return l.chatProcessors.register(NormalizeModId(modID), p.ProcessorName(), p)
}

// ChatProcessors returns every registered processor in registration order.
func (l *Loader) ChatProcessors() []ChatProcessor {
	return l.chatProcessors.all()
}

// ProcessChat runs the message through the processors in registration order
// and returns the first rewrite, or the original message when none handled
// it.
func (l *Loader) ProcessChat(ctx context.Context, message string) (string, bool) {
	for _, p := range l.ChatProcessors() {
		if out, handled := p.Process(ctx, message); handled {
			return out, true
		}
	}
	return message, false
}
