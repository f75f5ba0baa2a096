package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/notflix/internal/common"
)

func (a *App) ListProfiles(ctx context.Context) error {
	profiles := a.state.Profiles.FetchProfiles(ctx)
	cur := a.state.Profiles.Current()
	for _, p := range profiles {
		marker := " "
		if cur != nil && cur.ID == p.ID {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%s %d\t%s\t%s\n", marker, p.ID, p.Name, colorName(p.Color))
	}
	if len(profiles) == 0 {
		fmt.Fprintln(a.out, "No profiles")
	}
	return nil
}

func (a *App) SwitchProfile(ctx context.Context, args []string) error {
	id, err := parseID(args, "switch <profile id>")
	if err != nil {
		return err
	}
	if err := a.state.Profiles.SwitchProfile(ctx, id); err != nil {
		return err
	}
	a.playing = nil
	a.printCurrentProfile()
	return nil
}

func (a *App) AddProfile(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Profile name", a.out)
	if err != nil {
		return err
	}
	color, err := a.pickColor(common.DefaultProfileColor)
	if err != nil {
		return err
	}
	if err := a.state.Profiles.AddProfile(ctx, name, color); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile added")
	return nil
}

func (a *App) EditProfile(ctx context.Context, args []string) error {
	id, err := parseID(args, "editprofile <profile id>")
	if err != nil {
		return err
	}

	var name, color string
	for _, p := range a.state.Profiles.Profiles() {
		if p.ID == id {
			name, color = p.Name, p.Color
		}
	}
	if name == "" {
		return common.ErrorNotFound
	}

	newName, err := getSimpleText(a.reader, fmt.Sprintf("Profile name [%s]", name), a.out)
	if err != nil {
		return err
	}
	if newName != "" {
		name = newName
	}
	if color, err = a.pickColor(color); err != nil {
		return err
	}

	if err := a.state.Profiles.UpdateProfile(ctx, id, name, color); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile updated")
	return nil
}

func (a *App) DeleteProfile(ctx context.Context, args []string) error {
	id, err := parseID(args, "delprofile <profile id>")
	if err != nil {
		return err
	}
	if err := a.state.Profiles.DeleteProfile(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile deleted")
	a.printCurrentProfile()
	return nil
}

// pickColor shows the palette and returns the chosen class; an empty answer
// keeps current.
func (a *App) pickColor(current string) (string, error) {
	var b strings.Builder
	b.WriteString("Color")
	for _, c := range common.ProfileColors {
		fmt.Fprintf(&b, "\n  %d) %s", c.ID, c.Name)
	}
	fmt.Fprintf(&b, "\n[%s]", colorName(current))

	answer, err := getSimpleText(a.reader, b.String(), a.out)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return current, nil
	}
	n, err := strconv.Atoi(answer)
	if err == nil {
		for _, c := range common.ProfileColors {
			if c.ID == n {
				return c.Class, nil
			}
		}
	}
	// let validation report it
	return answer, nil
}

func colorName(class string) string {
	for _, c := range common.ProfileColors {
		if c.Class == class {
			return c.Name
		}
	}
	return class
}

func (a *App) printCurrentProfile() {
	if p := a.state.Profiles.Current(); p != nil {
		fmt.Fprintf(a.out, "Watching as %s\n", p.Name)
	}
}
