package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidDescriptor indicates a descriptor that is not a content type.
	ErrInvalidDescriptor = errors.New("cmsgen: invalid descriptor")
	// ErrUnsupportedDeclaration indicates a declaration the merge cannot flatten.
	ErrUnsupportedDeclaration = errors.New("cmsgen: unsupported declaration kind")
	// ErrDuplicateDeclaration indicates two declarations sharing one name in a module.
	ErrDuplicateDeclaration = errors.New("cmsgen: duplicate declaration")
	// ErrWriteFailed indicates a module could not be written to disk.
	ErrWriteFailed = errors.New("cmsgen: write failed")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("cmsgen: missing configuration")
)

// InvalidDescriptorError is returned when a descriptor does not carry the
// content-type marker or its id cannot be used as a TypeScript name. It
// aborts the synthesis of that descriptor only.
type InvalidDescriptorError struct {
	ID      string // sys.id of the descriptor
	SysType string // the sys.type found
	Reason  string // set when the marker is valid but the id is not
}

// Error implements the error interface.
func (e *InvalidDescriptorError) Error() string {
	var b strings.Builder
	b.WriteString("cmsgen: invalid descriptor")
	if e.ID != "" {
		b.WriteString(" ")
		b.WriteString(e.ID)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
		return b.String()
	}
	fmt.Fprintf(&b, ": sys.type is %q, want %q", e.SysType, "ContentType")
	return b.String()
}

// Is reports whether the target matches the sentinel error for InvalidDescriptorError.
func (e *InvalidDescriptorError) Is(target error) bool {
	return target == ErrInvalidDescriptor
}

// NewInvalidDescriptorError creates a new InvalidDescriptorError.
func NewInvalidDescriptorError(id, sysType string) *InvalidDescriptorError {
	return &InvalidDescriptorError{ID: id, SysType: sysType}
}

// UnsupportedDeclarationKindError is returned by the merge when a module holds
// a declaration it does not know how to flatten.
type UnsupportedDeclarationKindError struct {
	Module string
	Kind   string
	Name   string
}

// Error implements the error interface.
func (e *UnsupportedDeclarationKindError) Error() string {
	var b strings.Builder
	b.WriteString("cmsgen: unsupported declaration kind")
	if e.Kind != "" {
		fmt.Fprintf(&b, " %q", e.Kind)
	}
	if e.Name != "" {
		b.WriteString(" (")
		b.WriteString(e.Name)
		b.WriteString(")")
	}
	if e.Module != "" {
		b.WriteString(" in module ")
		b.WriteString(e.Module)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for UnsupportedDeclarationKindError.
func (e *UnsupportedDeclarationKindError) Is(target error) bool {
	return target == ErrUnsupportedDeclaration
}

// NewUnsupportedDeclarationKindError creates a new UnsupportedDeclarationKindError.
func NewUnsupportedDeclarationKindError(module string, d Declaration) *UnsupportedDeclarationKindError {
	e := &UnsupportedDeclarationKindError{Module: module, Kind: "<nil>"}
	if d != nil {
		e.Kind = d.Kind().String()
		e.Name = d.DeclName()
	}
	return e
}

// DuplicateDeclarationError is returned when a module would hold two
// declarations with the same name.
type DuplicateDeclarationError struct {
	Module string
	Name   string
}

// Error implements the error interface.
func (e *DuplicateDeclarationError) Error() string {
	return fmt.Sprintf("cmsgen: duplicate declaration %q in module %s", e.Name, e.Module)
}

// Is reports whether the target matches the sentinel error for DuplicateDeclarationError.
func (e *DuplicateDeclarationError) Is(target error) bool {
	return target == ErrDuplicateDeclaration
}

// WriteError represents a failure to persist one module.
type WriteError struct {
	Module string
	Path   string
	Cause  error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	var b strings.Builder
	b.WriteString("cmsgen: write error")
	if e.Module != "" {
		b.WriteString(" for module ")
		b.WriteString(e.Module)
	}
	if e.Path != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.Path)
		b.WriteString(")")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for WriteError.
func (e *WriteError) Is(target error) bool {
	return target == ErrWriteFailed
}

// NewWriteError creates a new WriteError.
func NewWriteError(module, path string, cause error) *WriteError {
	return &WriteError{Module: module, Path: path, Cause: cause}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("cmsgen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("cmsgen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// IsInvalidDescriptorError reports whether the error is an InvalidDescriptorError.
func IsInvalidDescriptorError(err error) bool {
	var e *InvalidDescriptorError
	return errors.As(err, &e)
}

// IsUnsupportedDeclarationKindError reports whether the error is an UnsupportedDeclarationKindError.
func IsUnsupportedDeclarationKindError(err error) bool {
	var e *UnsupportedDeclarationKindError
	return errors.As(err, &e)
}

// IsDuplicateDeclarationError reports whether the error is a DuplicateDeclarationError.
func IsDuplicateDeclarationError(err error) bool {
	var e *DuplicateDeclarationError
	return errors.As(err, &e)
}

// IsWriteError reports whether the error is a WriteError.
func IsWriteError(err error) bool {
	var e *WriteError
	return errors.As(err, &e)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}
