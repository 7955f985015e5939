package main

import (
	"bytes"
	"cmp"
	"slices"

	"github.com/t0lya/blog/components"
)

type tag string

func (t tag) String() string { return string(t) }

func (t tag) Id() string { return slugify(t.String()) }

type tagWithPosts struct {
	Tag   tag
	Posts posts
}

func (t tagWithPosts) EarliestDateFormatted() string {
	return formatDateShort(t.Posts.earliestDate())
}

func (t tagWithPosts) LatestDateFormatted() string {
	return formatDateShort(t.Posts.latestDate())
}

// Posts grouped by tag. Create using groupByTag, which sorts by number of
// posts per tag, then by newest post.
type postsByTag []tagWithPosts

func (pt *postsByTag) addPost(t tag, p *post) {
	for i, existing := range *pt {
		if existing.Tag.Id() == t.Id() {
			existing.Posts = append(existing.Posts, p)
			(*pt)[i] = existing
			return
		}
	}

	*pt = append(*pt, tagWithPosts{t, posts{p}})
}

func (pt postsByTag) String() string {
	b := new(bytes.Buffer)
	for _, t := range pt {
		b.WriteString(t.Tag.String())
		b.WriteString(": ")
		for i, p := range t.Posts {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.Title)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (pt postsByTag) summaries() []components.TagSummary {
	out := make([]components.TagSummary, len(pt))
	for i, t := range pt {
		out[i] = components.TagSummary{
			Tag:      components.Tag{Name: t.Tag.String(), ID: t.Tag.Id()},
			Count:    len(t.Posts),
			Earliest: t.EarliestDateFormatted(),
			Latest:   t.LatestDateFormatted(),
		}
	}
	return out
}

func groupByTag(ps posts) postsByTag {
	byTag := make(postsByTag, 0, 20)

	for _, p := range ps {
		for _, t := range p.Tags {
			byTag.addPost(t, p)
		}
	}

	slices.SortStableFunc(byTag, func(a, b tagWithPosts) int {
		// More posts = comes first (descending order)
		if c := cmp.Compare(len(b.Posts), len(a.Posts)); c != 0 {
			return c
		}
		// If equal post count, newer comes first
		if c := b.Posts.latestDate().Compare(a.Posts.latestDate()); c != 0 {
			return c
		}
		return cmp.Compare(a.Tag.Id(), b.Tag.Id())
	})

	return byTag
}
