package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pmboard/taskmanager-api/internal/core/ports"
)

const DefaultCacheTTL = time.Minute

// ProjectListCache stores project list pages per owner.
//
// Every owner has a version counter at projects:ver:<owner>. Page keys embed
// the version, so bumping the counter orphans all cached pages of that owner;
// they expire after the TTL. Get reports the version it looked up and Set
// writes under that version, never the current one.
//
// Key format: projects:list:<owner>:<version>:<page>:<limit>:<desc>:<status>:<search>
type ProjectListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProjectListCache creates a cache wrapping the given Redis client.
func NewProjectListCache(client *redis.Client, ttl time.Duration) *ProjectListCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ProjectListCache{client: client, ttl: ttl}
}

func (c *ProjectListCache) Get(ctx context.Context, f ports.ProjectFilter) (*ports.ProjectPage, int64, bool, error) {
	ver, err := c.client.Get(ctx, versionKey(f.OwnerID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, false, fmt.Errorf("project cache version: %w", err)
	}

	raw, err := c.client.Get(ctx, pageKey(f, ver)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ver, false, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("project cache get: %w", err)
	}

	var page ports.ProjectPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, 0, false, fmt.Errorf("project cache decode: %w", err)
	}
	return &page, ver, true, nil
}

func (c *ProjectListCache) Set(ctx context.Context, f ports.ProjectFilter, version int64, page *ports.ProjectPage) error {
	raw, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("project cache encode: %w", err)
	}
	if err := c.client.Set(ctx, pageKey(f, version), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("project cache set: %w", err)
	}
	return nil
}

// Invalidate drops every cached page of the owner.
func (c *ProjectListCache) Invalidate(ctx context.Context, ownerID string) error {
	if err := c.client.Incr(ctx, versionKey(ownerID)).Err(); err != nil {
		return fmt.Errorf("project cache invalidate: %w", err)
	}
	return nil
}

func pageKey(f ports.ProjectFilter, version int64) string {
	return fmt.Sprintf("projects:list:%s:%d:%d:%d:%t:%s:%s",
		f.OwnerID, version, f.Page, f.Limit, f.Desc, f.Status, f.Search)
}

func versionKey(ownerID string) string {
	return "projects:ver:" + ownerID
}
