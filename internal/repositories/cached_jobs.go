package repositories

import (
	"context"
	"strconv"
	"time"

	"github.com/jobconnect/pipeline/internal/domain/models"
	gocache "github.com/patrickmn/go-cache"
)

type jobLookup interface {
	GetByID(ctx context.Context, id int64) (*models.Job, error)
}

// CachedJobs caches job rows for pipeline rendering, where the same job
// is resolved on every board refresh.
type CachedJobs struct {
	repo  jobLookup
	cache *gocache.Cache
}

func NewCachedJobs(repo jobLookup) *CachedJobs {
	return &CachedJobs{repo: repo, cache: gocache.New(5*time.Minute, 10*time.Minute)}
}

func (c *CachedJobs) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	key := strconv.FormatInt(id, 10)
	if value, found := c.cache.Get(key); found {
		job := value.(models.Job)
		return &job, nil
	}

	job, err := c.repo.GetByID(ctx, id)
	if job != nil && err == nil {
		if err = c.cache.Add(key, *job, gocache.DefaultExpiration); err != nil {
			return job, err
		}
	}

	return job, err
}

// Invalidate drops a cached job after its status changes.
func (c *CachedJobs) Invalidate(id int64) {
	c.cache.Delete(strconv.FormatInt(id, 10))
}
