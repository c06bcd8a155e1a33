// Package menu provides the numbered command registry behind the main
// menu. Commands are registered once with a unique number and listed in
// number order.
package menu

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidChoice is returned for input that names no registered command.
var ErrInvalidChoice = errors.New("invalid choice")

// Command is a numbered menu entry carrying a handler of type H.
type Command[H any] struct {
	Number  int
	Title   string
	Handler H
}

// Registry holds numbered commands.
type Registry[H any] struct {
	commands map[int]Command[H]
}

// NewRegistry returns an empty registry.
func NewRegistry[H any]() *Registry[H] {
	return &Registry[H]{commands: make(map[int]Command[H])}
}

// Register adds a command.
// Panics if the number is not positive or is already registered.
func (r *Registry[H]) Register(number int, title string, h H) {
	if number <= 0 {
		panic(fmt.Sprintf("menu: invalid command number %d", number))
	}
	if _, exists := r.commands[number]; exists {
		panic(fmt.Sprintf("menu: command %d already registered", number))
	}
	r.commands[number] = Command[H]{Number: number, Title: title, Handler: h}
}

// List returns all commands sorted by number.
func (r *Registry[H]) List() []Command[H] {
	result := make([]Command[H], 0, len(r.commands))
	for _, c := range r.commands {
		result = append(result, c)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Number < result[j].Number
	})

	return result
}

// Lookup finds a command by number.
func (r *Registry[H]) Lookup(number int) (Command[H], bool) {
	c, ok := r.commands[number]
	return c, ok
}

// Parse resolves raw user input to a command.
func (r *Registry[H]) Parse(input string) (Command[H], error) {
	s := strings.TrimSpace(input)
	n, err := strconv.Atoi(s)
	if err != nil {
		return Command[H]{}, fmt.Errorf("%w: %q", ErrInvalidChoice, s)
	}
	c, ok := r.commands[n]
	if !ok {
		return Command[H]{}, fmt.Errorf("%w: %d", ErrInvalidChoice, n)
	}
	return c, nil
}

// Len returns the number of registered commands.
func (r *Registry[H]) Len() int {
	return len(r.commands)
}
