package diag

import (
	"strconv"
	"strings"
)

type locationField struct {
	name  string
	index int
}

// Location identifies the entry point and, optionally, the parameter a diagnostic concerns,
// e.g. vkCmdCopyTensorARM(): pCopyTensorInfo.pRegions[0].dimensionCount
type Location struct {
	Function string
	fields   []locationField
}

func NewLocation(function string) Location {
	return Location{Function: function}
}

// Dot returns a location one field deeper than l. l is not modified.
func (l Location) Dot(name string) Location {
	return l.push(locationField{name: name, index: -1})
}

// DotIndex returns a location naming element index of the array field name
func (l Location) DotIndex(name string, index int) Location {
	return l.push(locationField{name: name, index: index})
}

func (l Location) push(field locationField) Location {
	fields := make([]locationField, len(l.fields), len(l.fields)+1)
	copy(fields, l.fields)
	return Location{Function: l.Function, fields: append(fields, field)}
}

// Field returns the deepest field name, or an empty string for a bare function location
func (l Location) Field() string {
	if len(l.fields) == 0 {
		return ""
	}
	return l.fields[len(l.fields)-1].name
}

func (l Location) String() string {
	var b strings.Builder
	b.WriteString(l.Function)
	b.WriteString("()")
	if len(l.fields) == 0 {
		return b.String()
	}

	b.WriteString(": ")
	for i, f := range l.fields {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(f.name)
		if f.index >= 0 {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(f.index))
			b.WriteByte(']')
		}
	}
	return b.String()
}
