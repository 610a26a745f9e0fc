package commentapp

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"blogcap/internal/adapters/database"
	"blogcap/internal/adapters/database/databasetest"
	commentEntity "blogcap/internal/core/comment"
	"blogcap/internal/core/errs"
	postEntity "blogcap/internal/core/post"
	"blogcap/internal/core/user"
	commentPort "blogcap/internal/ports/comment"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*CommentService, *gorm.DB) {
	db := databasetest.Open(t)
	svc := NewCommentService(database.NewCommentRepositoryDatabase(db), database.NewPostRepositoryDatabase(db), 0, zap.NewNop())
	return svc, db
}

func TestSubmitComment_LimitOneScenario(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	author := databasetest.SeedUser(t, db, "alice", user.RoleUser)
	reader := databasetest.SeedUser(t, db, "bob", user.RoleUser)
	p := databasetest.SeedPost(t, db, author, 1)

	c, err := svc.SubmitComment(ctx, p.ID.String(), reader.ID.String(), "first")
	if err != nil {
		t.Fatalf("first comment: %v", err)
	}
	if c.Content != "first" || c.PostID != p.ID.String() || c.UserID != reader.ID.String() {
		t.Errorf("unexpected comment %+v", c)
	}

	_, err = svc.SubmitComment(ctx, p.ID.String(), reader.ID.String(), "second")
	var qe *errs.QuotaExceededError
	if !errors.As(err, &qe) {
		t.Fatalf("expected QuotaExceededError, got %v", err)
	}
	if qe.Limit != 1 {
		t.Errorf("expected limit 1 in error, got %d", qe.Limit)
	}
	if n := databasetest.CountComments(t, db, p, reader); n != 1 {
		t.Errorf("expected 1 comment, got %d", n)
	}
}

func TestSubmitComment_QuotaIsPerUser(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	author := databasetest.SeedUser(t, db, "alice", user.RoleUser)
	bob := databasetest.SeedUser(t, db, "bob", user.RoleUser)
	cleo := databasetest.SeedUser(t, db, "cleo", user.RoleUser)
	p := databasetest.SeedPost(t, db, author, 2)
	other := databasetest.SeedPost(t, db, author, 2)
	databasetest.SeedComments(t, db, p, bob, 2)

	if _, err := svc.SubmitComment(ctx, p.ID.String(), bob.ID.String(), "again"); !errors.Is(err, errs.ErrQuotaExceeded) {
		t.Errorf("expected bob to be capped, got %v", err)
	}
	if _, err := svc.SubmitComment(ctx, p.ID.String(), cleo.ID.String(), "hi"); err != nil {
		t.Errorf("cleo has her own quota: %v", err)
	}
	if _, err := svc.SubmitComment(ctx, other.ID.String(), bob.ID.String(), "hi"); err != nil {
		t.Errorf("bob has a fresh quota on another post: %v", err)
	}
}

func TestSubmitComment_IdenticalContentNotDeduplicated(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	author := databasetest.SeedUser(t, db, "alice", user.RoleUser)
	reader := databasetest.SeedUser(t, db, "bob", user.RoleUser)
	p := databasetest.SeedPost(t, db, author, 3)

	for i := 0; i < 3; i++ {
		if _, err := svc.SubmitComment(ctx, p.ID.String(), reader.ID.String(), "same"); err != nil {
			t.Fatalf("submit #%d: %v", i, err)
		}
	}
	if n := databasetest.CountComments(t, db, p, reader); n != 3 {
		t.Errorf("expected 3 comments, got %d", n)
	}
}

func TestSubmitComment_UnknownPost(t *testing.T) {
	svc, db := newTestService(t)
	reader := databasetest.SeedUser(t, db, "bob", user.RoleUser)

	if _, err := svc.SubmitComment(context.Background(), uuid.Must(uuid.NewV4()).String(), reader.ID.String(), "x"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.SubmitComment(context.Background(), "garbage", reader.ID.String(), "x"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound for malformed id, got %v", err)
	}
}

// More submitters than the limit on one (post, user) pair; exactly limit of
// them may win. databasetest serializes them on one connection, so the
// interleaved case is covered by TestSubmitComment_StaleCountHitsUniqueIndex.
func TestSubmitComment_ConcurrentSubmissionsRespectLimit(t *testing.T) {
	svc, db := newTestService(t)
	author := databasetest.SeedUser(t, db, "alice", user.RoleUser)
	reader := databasetest.SeedUser(t, db, "bob", user.RoleUser)
	const limit, submitters = 3, 12
	p := databasetest.SeedPost(t, db, author, limit)

	var ok, capped int64
	var g errgroup.Group
	for i := 0; i < submitters; i++ {
		g.Go(func() error {
			_, err := svc.SubmitComment(context.Background(), p.ID.String(), reader.ID.String(), "race")
			switch {
			case err == nil:
				atomic.AddInt64(&ok, 1)
			case errors.Is(err, errs.ErrQuotaExceeded):
				atomic.AddInt64(&capped, 1)
			default:
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ok != limit || capped != submitters-limit {
		t.Errorf("expected %d successes and %d quota errors, got %d and %d", limit, submitters-limit, ok, capped)
	}
	if n := databasetest.CountComments(t, db, p, reader); n != limit {
		t.Errorf("expected %d stored comments, got %d", limit, n)
	}
}

// staleCountRepo lets a rival submission commit between the first
// transaction's count and its insert, the interleaving two concurrent
// submitters produce on a database without row locks.
type staleCountRepo struct {
	commentPort.CommentRepository
	postID, userID string
	rival          func() error
	fired          bool
}

type staleCountStore struct {
	commentPort.QuotaStore
	used int64
}

func (s staleCountStore) CountByPostAndUser(ctx context.Context, postID, userID string) (int64, error) {
	return s.used, nil
}

func (r *staleCountRepo) WithinQuotaTx(ctx context.Context, fn func(store commentPort.QuotaStore) error) error {
	if r.fired {
		return r.CommentRepository.WithinQuotaTx(ctx, fn)
	}
	r.fired = true

	used, err := r.CommentRepository.CountByPostAndUser(ctx, r.postID, r.userID)
	if err != nil {
		return err
	}
	if err := r.rival(); err != nil {
		return err
	}
	return r.CommentRepository.WithinQuotaTx(ctx, func(store commentPort.QuotaStore) error {
		return fn(staleCountStore{QuotaStore: store, used: used})
	})
}

func TestSubmitComment_StaleCountHitsUniqueIndex(t *testing.T) {
	db := databasetest.Open(t)
	ctx := context.Background()
	author := databasetest.SeedUser(t, db, "alice", user.RoleUser)
	reader := databasetest.SeedUser(t, db, "bob", user.RoleUser)
	p := databasetest.SeedPost(t, db, author, 1)

	realRepo := database.NewCommentRepositoryDatabase(db)
	postRepo := database.NewPostRepositoryDatabase(db)
	rivalSvc := NewCommentService(realRepo, postRepo, 0, zap.NewNop())

	core, logs := observer.New(zap.WarnLevel)
	repo := &staleCountRepo{
		CommentRepository: realRepo,
		postID:            p.ID.String(),
		userID:            reader.ID.String(),
		rival: func() error {
			_, err := rivalSvc.SubmitComment(ctx, p.ID.String(), reader.ID.String(), "rival")
			return err
		},
	}
	svc := NewCommentService(repo, postRepo, 0, zap.New(core))

	_, err := svc.SubmitComment(ctx, p.ID.String(), reader.ID.String(), "late")
	var quotaErr *errs.QuotaExceededError
	if !errors.As(err, &quotaErr) || quotaErr.Limit != 1 {
		t.Fatalf("expected QuotaExceededError after retry, got %v", err)
	}
	if n := logs.FilterMessage("⚠️ Lost comment sequence race, retrying").Len(); n != 1 {
		t.Errorf("expected one logged retry, got %d", n)
	}
	if n := databasetest.CountComments(t, db, p, reader); n != 1 {
		t.Errorf("expected 1 stored comment, got %d", n)
	}

	var stored []commentEntity.Comment
	if err := db.Where("post_id = ?", p.ID).Find(&stored).Error; err != nil {
		t.Fatalf("load comments: %v", err)
	}
	if len(stored) != 1 || stored[0].Content != "rival" || stored[0].Seq != 1 {
		t.Errorf("expected only the rival's comment with seq 1, got %+v", stored)
	}
}

// With room left, the loser of the race retries into the next sequence slot.
func TestSubmitComment_StaleCountRetriesIntoNextSlot(t *testing.T) {
	db := databasetest.Open(t)
	ctx := context.Background()
	author := databasetest.SeedUser(t, db, "alice", user.RoleUser)
	reader := databasetest.SeedUser(t, db, "bob", user.RoleUser)
	p := databasetest.SeedPost(t, db, author, 2)

	realRepo := database.NewCommentRepositoryDatabase(db)
	postRepo := database.NewPostRepositoryDatabase(db)
	rivalSvc := NewCommentService(realRepo, postRepo, 0, zap.NewNop())

	core, logs := observer.New(zap.WarnLevel)
	repo := &staleCountRepo{
		CommentRepository: realRepo,
		postID:            p.ID.String(),
		userID:            reader.ID.String(),
		rival: func() error {
			_, err := rivalSvc.SubmitComment(ctx, p.ID.String(), reader.ID.String(), "rival")
			return err
		},
	}
	svc := NewCommentService(repo, postRepo, 0, zap.New(core))

	if _, err := svc.SubmitComment(ctx, p.ID.String(), reader.ID.String(), "late"); err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if n := logs.FilterMessage("⚠️ Lost comment sequence race, retrying").Len(); n != 1 {
		t.Errorf("expected one logged retry, got %d", n)
	}

	var seqs []int
	if err := db.Model(&commentEntity.Comment{}).Where("post_id = ?", p.ID).Order("seq").Pluck("seq", &seqs).Error; err != nil {
		t.Fatalf("load seqs: %v", err)
	}
	if len(seqs) != 2 || seqs[0] != 1 || seqs[1] != 2 {
		t.Errorf("expected seqs [1 2], got %v", seqs)
	}
}

func TestRemaining(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	author := databasetest.SeedUser(t, db, "alice", user.RoleUser)
	reader := databasetest.SeedUser(t, db, "bob", user.RoleUser)
	p := databasetest.SeedPost(t, db, author, 3)
	databasetest.SeedComments(t, db, p, reader, 2)

	q, err := svc.Remaining(ctx, p.ID.String(), reader.ID.String())
	if err != nil {
		t.Fatalf("remaining: %v", err)
	}
	if q.Used != 2 || q.Limit != 3 || q.Remaining != 1 {
		t.Errorf("unexpected quota %+v", q)
	}

	list, err := svc.ListByPost(ctx, p.ID.String())
	if err != nil || len(list) != 2 {
		t.Errorf("expected 2 comments, got %d (%v)", len(list), err)
	}
	if list[0].Author != "Bob" {
		t.Errorf("expected author name Bob, got %q", list[0].Author)
	}
}

// seqRaceRepo loses the sequence race a fixed number of times.
type seqRaceRepo struct {
	losses  int32
	created int32
}

type seqRaceStore struct{ repo *seqRaceRepo }

func (r *seqRaceRepo) WithinQuotaTx(ctx context.Context, fn func(store commentPort.QuotaStore) error) error {
	return fn(seqRaceStore{repo: r})
}

func (r *seqRaceRepo) CountByPostAndUser(ctx context.Context, postID, userID string) (int64, error) {
	return 0, nil
}

func (r *seqRaceRepo) FindByPostID(ctx context.Context, postID string) ([]*commentEntity.Comment, error) {
	return nil, nil
}

func (s seqRaceStore) LockPost(ctx context.Context, postID string) (*postEntity.Post, error) {
	return &postEntity.Post{ID: uuid.FromStringOrNil(postID), MaxCommentsPerUser: 3}, nil
}

func (s seqRaceStore) CountByPostAndUser(ctx context.Context, postID, userID string) (int64, error) {
	return 0, nil
}

func (s seqRaceStore) Create(ctx context.Context, c *commentEntity.Comment) error {
	if atomic.AddInt32(&s.repo.losses, -1) >= 0 {
		return commentPort.ErrSeqTaken
	}
	atomic.AddInt32(&s.repo.created, 1)
	return nil
}

func TestSubmitComment_RetriesLostRace(t *testing.T) {
	repo := &seqRaceRepo{losses: 2}
	svc := NewCommentService(repo, nil, 3, zap.NewNop())
	postID, userID := uuid.Must(uuid.NewV4()).String(), uuid.Must(uuid.NewV4()).String()

	if _, err := svc.SubmitComment(context.Background(), postID, userID, "x"); err != nil {
		t.Fatalf("expected success on third attempt, got %v", err)
	}
	if repo.created != 1 {
		t.Errorf("expected one insert, got %d", repo.created)
	}
}

func TestSubmitComment_GivesUpUnderContention(t *testing.T) {
	repo := &seqRaceRepo{losses: 100}
	svc := NewCommentService(repo, nil, 3, zap.NewNop())
	postID, userID := uuid.Must(uuid.NewV4()).String(), uuid.Must(uuid.NewV4()).String()

	if _, err := svc.SubmitComment(context.Background(), postID, userID, "x"); !errors.Is(err, errs.ErrContention) {
		t.Fatalf("expected ErrContention, got %v", err)
	}
	if repo.created != 0 {
		t.Errorf("expected no insert, got %d", repo.created)
	}
}
