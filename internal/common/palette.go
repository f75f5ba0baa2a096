package common

import "strings"

// ProfileColor is one entry of the fixed avatar palette. Class is the value
// stored with a profile.
type ProfileColor struct {
	ID    int
	Name  string
	Class string
}

const DefaultProfileColor = "bg-red-600"

var ProfileColors = []ProfileColor{
	{ID: 1, Name: "Red", Class: "bg-red-600"},
	{ID: 2, Name: "Blue", Class: "bg-blue-600"},
	{ID: 3, Name: "Green", Class: "bg-green-600"},
	{ID: 4, Name: "Yellow", Class: "bg-yellow-500"},
	{ID: 5, Name: "Purple", Class: "bg-purple-600"},
	{ID: 6, Name: "Pink", Class: "bg-pink-600"},
	{ID: 7, Name: "Orange", Class: "bg-orange-600"},
	{ID: 8, Name: "Teal", Class: "bg-teal-600"},
	{ID: 9, Name: "Indigo", Class: "bg-indigo-600"},
	{ID: 10, Name: "Gray", Class: "bg-gray-600"},
}

func IsProfileColor(class string) bool {
	for _, c := range ProfileColors {
		if c.Class == class {
			return true
		}
	}
	return false
}

// ValidateProfile checks a profile name and color and returns the trimmed name.
func ValidateProfile(name, color string) (string, error) {
	name = strings.TrimSpace(name)
	n := len([]rune(name))
	if n < MinProfileNameLength || n > MaxProfileNameLength {
		return "", &ValidationError{Field: "name", Reason: "must be 3 to 20 characters"}
	}
	if !IsProfileColor(color) {
		return "", &ValidationError{Field: "color", Reason: "must be one of the palette colors"}
	}
	return name, nil
}
