// Package enum provides closed, ordered vocabularies of string tokens.
//
// A Set is built once at package initialisation and never mutated, so any
// number of goroutines may read it without coordination.
package enum

import (
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/goconst/internal/platform/errors"
)

// Member declares one token of a vocabulary and its description.
type Member[T ~string] struct {
	Value       T
	Description string
}

// Set is an immutable, ordered vocabulary.
type Set[T ~string] struct {
	name    string
	members []Member[T]
	index   map[T]int
}

// New validates members and returns the vocabulary in declaration order.
func New[T ~string](name string, members ...Member[T]) (*Set[T], error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.New(apperrors.CodeInvalidEnumDefinition, "enum name is required")
	}
	set := &Set[T]{
		name:    name,
		members: make([]Member[T], 0, len(members)),
		index:   make(map[T]int, len(members)),
	}
	for _, member := range members {
		if strings.TrimSpace(string(member.Value)) == "" {
			return nil, apperrors.WithMetadata(apperrors.CodeInvalidEnumDefinition,
				fmt.Sprintf("%s: empty token", name), map[string]string{"enum": name})
		}
		if _, ok := set.index[member.Value]; ok {
			return nil, apperrors.WithMetadata(apperrors.CodeInvalidEnumDefinition,
				fmt.Sprintf("%s: duplicate token %q", name, member.Value),
				map[string]string{"enum": name, "value": string(member.Value)})
		}
		set.index[member.Value] = len(set.members)
		set.members = append(set.members, member)
	}
	return set, nil
}

// MustNew is New for package-level declarations.
func MustNew[T ~string](name string, members ...Member[T]) *Set[T] {
	set, err := New(name, members...)
	if err != nil {
		panic(err)
	}
	return set
}

// Name returns the vocabulary name used in errors and generated artifacts.
func (s *Set[T]) Name() string {
	return s.name
}

// Len returns the number of tokens.
func (s *Set[T]) Len() int {
	return len(s.members)
}

// Values returns the tokens in declaration order. The slice is a copy.
func (s *Set[T]) Values() []T {
	values := make([]T, len(s.members))
	for i, member := range s.members {
		values[i] = member.Value
	}
	return values
}

// Strings returns the tokens as plain strings in declaration order.
func (s *Set[T]) Strings() []string {
	values := make([]string, len(s.members))
	for i, member := range s.members {
		values[i] = string(member.Value)
	}
	return values
}

// Members returns the declared members in order. The slice is a copy.
func (s *Set[T]) Members() []Member[T] {
	members := make([]Member[T], len(s.members))
	copy(members, s.members)
	return members
}

// Contains reports whether value is a declared token.
func (s *Set[T]) Contains(value T) bool {
	_, ok := s.index[value]
	return ok
}

// Description returns the description of value, or "" for non-members.
func (s *Set[T]) Description(value T) string {
	i, ok := s.index[value]
	if !ok {
		return ""
	}
	return s.members[i].Description
}

// Parse accepts exactly the declared tokens.
func (s *Set[T]) Parse(value string) (T, error) {
	token := T(value)
	if s.Contains(token) {
		return token, nil
	}
	var zero T
	return zero, apperrors.WithMetadata(apperrors.CodeInvalidEnumValue,
		fmt.Sprintf("invalid %s %q", s.name, value),
		map[string]string{"enum": s.name, "value": value})
}

// Normalize resolves loosely formatted labels such as " task-created " to a
// declared token.
func (s *Set[T]) Normalize(value string) (T, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		var zero T
		return zero, false
	}
	canonical := strings.NewReplacer("-", "_", " ", "_").Replace(trimmed)
	for _, member := range s.members {
		if strings.EqualFold(string(member.Value), canonical) {
			return member.Value, true
		}
	}
	var zero T
	return zero, false
}
