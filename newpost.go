package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"gopkg.in/yaml.v3"
)

// slugify turns a title or tag into a URL-safe slug: lower case ASCII
// letters and digits separated by single dashes.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// scaffoldPost creates <contentDir>/<slug>/index.md with frontmatter for a
// new draft and returns its path. An existing post is never overwritten.
func scaffoldPost(contentDir, title, description string, date time.Time) (string, error) {
	slug := slugify(title)
	if slug == "" {
		return "", fmt.Errorf("title %q has no usable characters for a slug", title)
	}
	dir := filepath.Join(contentDir, slug)
	postPath := filepath.Join(dir, "index.md")
	if _, err := os.Stat(postPath); err == nil {
		return "", fmt.Errorf("%v already exists", postPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	fm := frontmatter{
		Title:       title,
		Date:        date.Format(time.RFC3339),
		Description: description,
		Tags:        []string{},
		Draft:       true,
	}
	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}

	var b bytes.Buffer
	b.Write(frontmatterFence)
	b.WriteByte('\n')
	b.Write(header)
	b.Write(frontmatterFence)
	b.WriteString("\n\n")

	if err := os.MkdirAll(dir, 0o775); err != nil {
		return "", err
	}
	f, err := os.OpenFile(postPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o664)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(b.Bytes()); err != nil {
		f.Close()
		return "", err
	}
	return postPath, f.Close()
}

// promptNewPost asks for the title and description of a new post.
func promptNewPost() (title, description string, err error) {
	titlePrompt := promptui.Prompt{
		Label: "Title",
		Validate: func(s string) error {
			if slugify(s) == "" {
				return errors.New("title must contain letters or digits")
			}
			return nil
		},
	}
	title, err = titlePrompt.Run()
	if err != nil {
		return "", "", fmt.Errorf("title: %w", err)
	}

	descPrompt := promptui.Prompt{
		Label:   "Description",
		Default: "",
	}
	description, err = descPrompt.Run()
	if err != nil {
		return "", "", fmt.Errorf("description: %w", err)
	}
	return strings.TrimSpace(title), strings.TrimSpace(description), nil
}
