// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"reflect"
	"testing"

	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
)

func TestSetAndGetTags(t *testing.T) {
	q := testQueries(t)
	ctx := context.Background()

	p := createTestProject(t, q, "Tagged", "tagged", model.StatusDraft)

	err := q.SetTags(ctx, model.KindProject, p.ID, []string{"go", "sqlite", " go ", "", "web"})
	if err != nil {
		t.Fatalf("SetTags: %v", err)
	}

	tags, err := q.GetTags(ctx, model.KindProject, p.ID)
	if err != nil {
		t.Fatalf("GetTags: %v", err)
	}
	want := []string{"go", "sqlite", "web"}
	if !reflect.DeepEqual(tags, want) {
		t.Errorf("GetTags = %v, want %v", tags, want)
	}

	// Replacement removes tags absent from the new set.
	if err := q.SetTags(ctx, model.KindProject, p.ID, []string{"go"}); err != nil {
		t.Fatalf("SetTags replace: %v", err)
	}
	tags, err = q.GetTags(ctx, model.KindProject, p.ID)
	if err != nil {
		t.Fatalf("GetTags: %v", err)
	}
	if !reflect.DeepEqual(tags, []string{"go"}) {
		t.Errorf("GetTags after replace = %v, want [go]", tags)
	}
}

func TestTagsScopedByKind(t *testing.T) {
	q := testQueries(t)
	ctx := context.Background()

	p := createTestProject(t, q, "Scoped", "scoped", model.StatusDraft)
	post, err := q.CreatePost(ctx, CreatePostParams{
		Title: "Scoped Post", Slug: "scoped-post", Content: "body", Status: model.StatusDraft,
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	if err := q.SetTags(ctx, model.KindProject, p.ID, []string{"shared"}); err != nil {
		t.Fatalf("SetTags project: %v", err)
	}
	if err := q.SetTags(ctx, model.KindPost, post.ID, []string{"shared"}); err != nil {
		t.Fatalf("SetTags post: %v", err)
	}

	projectTags, err := q.ListTags(ctx, model.KindProject)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	postTags, err := q.ListTags(ctx, model.KindPost)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(projectTags) != 1 || len(postTags) != 1 {
		t.Errorf("kinds should hold independent tag sets: %v / %v", projectTags, postTags)
	}
}

func TestGetTagsEmpty(t *testing.T) {
	q := testQueries(t)
	ctx := context.Background()

	p := createTestProject(t, q, "Bare", "bare", model.StatusDraft)
	tags, err := q.GetTags(ctx, model.KindProject, p.ID)
	if err != nil {
		t.Fatalf("GetTags: %v", err)
	}
	if tags == nil {
		t.Error("GetTags should return an empty slice, not nil")
	}
	if len(tags) != 0 {
		t.Errorf("GetTags = %v, want empty", tags)
	}
}

func TestTagsUnknownKind(t *testing.T) {
	q := testQueries(t)
	if _, err := q.GetTags(context.Background(), "bogus", 1); err == nil {
		t.Error("expected error for unknown kind")
	}
}
