package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/anonto42/shayari-hub/backend/internal/auth"
	"github.com/anonto42/shayari-hub/backend/internal/models"
	"github.com/anonto42/shayari-hub/backend/internal/repositories"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type likeKey struct {
	userID    uint
	shayariID string
}

// memStore backs every fake repository. Each write advances a fake clock so
// creation order is strict.
type memStore struct {
	mu sync.Mutex

	clock time.Time

	users      map[uint]*models.User
	nextUserID uint

	shayaris map[string]*models.Shayari

	likes   map[likeKey]bool
	saves   []models.Save
	follows map[[2]uint]bool

	comments      []models.Comment
	nextCommentID uint

	notifications []models.Notification
	nextNotifID   uint

	failures map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:    map[uint]*models.User{},
		shayaris: map[string]*models.Shayari{},
		likes:    map[likeKey]bool{},
		follows:  map[[2]uint]bool{},
		failures: map[string]error{},
	}
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *memStore) failOn(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = err
}

func (s *memStore) fail(method string) error {
	return s.failures[method]
}

func (s *memStore) notify(n *models.Notification) {
	if n == nil {
		return
	}
	s.nextNotifID++
	n.ID = s.nextNotifID
	n.CreatedAt = s.tick()
	s.notifications = append(s.notifications, *n)
}

// --- users ---

type fakeUsers struct{ s *memStore }

func (r fakeUsers) CreateUser(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("CreateUser"); err != nil {
		return err
	}
	for _, u := range r.s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	r.s.nextUserID++
	user.ID = r.s.nextUserID
	user.CreatedAt = r.s.tick()
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r fakeUsers) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r fakeUsers) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Username == username })
}

func (r fakeUsers) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r fakeUsers) GetUserByFirebaseUID(ctx context.Context, uid string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.FirebaseUID != nil && *u.FirebaseUID == uid })
}

func (r fakeUsers) FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email || u.Username == username })
}

func (r fakeUsers) GetUsersByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("GetUsersByIDs"); err != nil {
		return nil, err
	}
	var out []models.User
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r fakeUsers) UpdateUser(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r fakeUsers) find(match func(*models.User) bool) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// --- shayaris ---

type fakeShayaris struct{ s *memStore }

func (r fakeShayaris) CreateShayari(ctx context.Context, shayari *models.Shayari) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	shayari.ID = primitive.NewObjectID()
	shayari.CreatedAt = r.s.tick()
	shayari.UpdatedAt = shayari.CreatedAt
	cp := *shayari
	r.s.shayaris[shayari.ID.Hex()] = &cp
	return nil
}

func (r fakeShayaris) GetShayariByID(ctx context.Context, id string) (*models.Shayari, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sh, ok := r.s.shayaris[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *sh
	return &cp, nil
}

func (r fakeShayaris) GetShayarisByIDs(ctx context.Context, ids []string) ([]models.Shayari, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Shayari
	for _, id := range ids {
		if sh, ok := r.s.shayaris[id]; ok {
			out = append(out, *sh)
		}
	}
	return out, nil
}

func (r fakeShayaris) ListShayaris(ctx context.Context, q repositories.ShayariQuery) ([]models.Shayari, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("ListShayaris"); err != nil {
		return nil, err
	}

	var authors map[uint]bool
	if q.AuthorIDs != nil {
		authors = map[uint]bool{}
		for _, id := range q.AuthorIDs {
			authors[id] = true
		}
	}

	var out []models.Shayari
	for _, sh := range r.s.shayaris {
		if authors != nil && !authors[sh.UserID] {
			continue
		}
		if q.Mood != "" && sh.Mood != q.Mood {
			continue
		}
		if q.Language != "" && sh.Language != q.Language {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(sh.Content), strings.ToLower(q.Search)) {
			continue
		}
		out = append(out, *sh)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if q.Limit > 0 && int64(len(out)) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (r fakeShayaris) ListShayariIDs(ctx context.Context) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := make([]string, 0, len(r.s.shayaris))
	for id := range r.s.shayaris {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r fakeShayaris) CountByAuthor(ctx context.Context, userID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, sh := range r.s.shayaris {
		if sh.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r fakeShayaris) UpdateShayari(ctx context.Context, shayari *models.Shayari) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.shayaris[shayari.ID.Hex()]
	if !ok {
		return repositories.ErrNotFound
	}
	existing.Content = shayari.Content
	existing.Mood = shayari.Mood
	existing.Language = shayari.Language
	existing.UpdatedAt = r.s.tick()
	return nil
}

func (r fakeShayaris) DeleteShayari(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.shayaris[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.s.shayaris, id)
	return nil
}

func (r fakeShayaris) SetLikesCount(ctx context.Context, id string, count int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("SetLikesCount"); err != nil {
		return err
	}
	if sh, ok := r.s.shayaris[id]; ok {
		sh.LikesCount = count
	}
	return nil
}

func (r fakeShayaris) SetCommentsCount(ctx context.Context, id string, count int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sh, ok := r.s.shayaris[id]; ok {
		sh.CommentsCount = count
	}
	return nil
}

// --- likes ---

type fakeLikes struct{ s *memStore }

func (r fakeLikes) ToggleLike(ctx context.Context, userID uint, shayariID string, notify *models.Notification) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := likeKey{userID, shayariID}
	if r.s.likes[key] {
		delete(r.s.likes, key)
		return false, nil
	}
	r.s.likes[key] = true
	r.s.notify(notify)
	return true, nil
}

func (r fakeLikes) CountByShayari(ctx context.Context, shayariID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for k := range r.s.likes {
		if k.shayariID == shayariID {
			n++
		}
	}
	return n, nil
}

func (r fakeLikes) LikedShayariIDs(ctx context.Context, userID uint, ids []string) (map[string]bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("LikedShayariIDs"); err != nil {
		return nil, err
	}
	out := map[string]bool{}
	for _, id := range ids {
		if r.s.likes[likeKey{userID, id}] {
			out[id] = true
		}
	}
	return out, nil
}

// --- saves ---

type fakeSaves struct{ s *memStore }

func (r fakeSaves) ToggleSave(ctx context.Context, userID uint, shayariID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, sv := range r.s.saves {
		if sv.UserID == userID && sv.ShayariID == shayariID {
			r.s.saves = append(r.s.saves[:i], r.s.saves[i+1:]...)
			return false, nil
		}
	}
	r.s.saves = append(r.s.saves, models.Save{
		ID:        uint(len(r.s.saves) + 1),
		UserID:    userID,
		ShayariID: shayariID,
		CreatedAt: r.s.tick(),
	})
	return true, nil
}

func (r fakeSaves) ListByUser(ctx context.Context, userID uint, limit int) ([]models.Save, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Save
	for i := len(r.s.saves) - 1; i >= 0 && len(out) < limit; i-- {
		if r.s.saves[i].UserID == userID {
			out = append(out, r.s.saves[i])
		}
	}
	return out, nil
}

func (r fakeSaves) SavedShayariIDs(ctx context.Context, userID uint, ids []string) (map[string]bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := map[string]bool{}
	for _, sv := range r.s.saves {
		if sv.UserID == userID && want[sv.ShayariID] {
			out[sv.ShayariID] = true
		}
	}
	return out, nil
}

// --- follows ---

type fakeFollows struct{ s *memStore }

func (r fakeFollows) ToggleFollow(ctx context.Context, followerID, followingID uint, notify *models.Notification) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := [2]uint{followerID, followingID}
	if r.s.follows[key] {
		delete(r.s.follows, key)
		return false, nil
	}
	r.s.follows[key] = true
	r.s.notify(notify)
	return true, nil
}

func (r fakeFollows) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.follows[[2]uint{followerID, followingID}], nil
}

func (r fakeFollows) GetFollowersCount(ctx context.Context, userID uint) (int64, error) {
	return r.count(func(k [2]uint) bool { return k[1] == userID }), nil
}

func (r fakeFollows) GetFollowingCount(ctx context.Context, userID uint) (int64, error) {
	return r.count(func(k [2]uint) bool { return k[0] == userID }), nil
}

func (r fakeFollows) GetFollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ids []uint
	for k := range r.s.follows {
		if k[0] == userID {
			ids = append(ids, k[1])
		}
	}
	return ids, nil
}

func (r fakeFollows) MostFollowed(ctx context.Context, limit int) ([]repositories.FollowCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := map[uint]int64{}
	for k := range r.s.follows {
		counts[k[1]]++
	}
	var out []repositories.FollowCount
	for id, n := range counts {
		out = append(out, repositories.FollowCount{UserID: id, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].UserID < out[j].UserID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r fakeFollows) count(match func([2]uint) bool) int64 {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for k := range r.s.follows {
		if match(k) {
			n++
		}
	}
	return n
}

// --- comments ---

type fakeComments struct{ s *memStore }

func (r fakeComments) CreateComment(ctx context.Context, comment *models.Comment, notify *models.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextCommentID++
	comment.ID = r.s.nextCommentID
	comment.CreatedAt = r.s.tick()
	r.s.comments = append(r.s.comments, *comment)
	r.s.notify(notify)
	return nil
}

func (r fakeComments) GetCommentsByShayariID(ctx context.Context, shayariID string) ([]models.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Comment
	for _, c := range r.s.comments {
		if c.ShayariID == shayariID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r fakeComments) CountByShayari(ctx context.Context, shayariID string) (int64, error) {
	comments, _ := r.GetCommentsByShayariID(ctx, shayariID)
	return int64(len(comments)), nil
}

func (r fakeComments) DeleteShayariDependents(ctx context.Context, shayariID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.comments[:0]
	for _, c := range r.s.comments {
		if c.ShayariID != shayariID {
			kept = append(kept, c)
		}
	}
	r.s.comments = kept
	for k := range r.s.likes {
		if k.shayariID == shayariID {
			delete(r.s.likes, k)
		}
	}
	saves := r.s.saves[:0]
	for _, sv := range r.s.saves {
		if sv.ShayariID != shayariID {
			saves = append(saves, sv)
		}
	}
	r.s.saves = saves
	return nil
}

// --- notifications ---

type fakeNotifications struct{ s *memStore }

func (r fakeNotifications) GetByRecipientID(ctx context.Context, recipientID uint, limit int) ([]models.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Notification
	for i := len(r.s.notifications) - 1; i >= 0 && len(out) < limit; i-- {
		if r.s.notifications[i].RecipientID == recipientID {
			out = append(out, r.s.notifications[i])
		}
	}
	return out, nil
}

func (r fakeNotifications) GetUnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, nt := range r.s.notifications {
		if nt.RecipientID == recipientID && !nt.IsRead {
			n++
		}
	}
	return n, nil
}

func (r fakeNotifications) MarkAllAsRead(ctx context.Context, recipientID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.notifications {
		if r.s.notifications[i].RecipientID == recipientID {
			r.s.notifications[i].IsRead = true
		}
	}
	return nil
}

// --- trending cache ---

type fakeCache struct {
	mu    sync.Mutex
	poets []models.TrendingPoet
	hits  int
	sets  int
}

func (c *fakeCache) GetTrending(ctx context.Context) ([]models.TrendingPoet, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.poets == nil {
		return nil, false, nil
	}
	c.hits++
	return c.poets, true, nil
}

func (c *fakeCache) SetTrending(ctx context.Context, poets []models.TrendingPoet) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.poets = poets
	return nil
}

func (c *fakeCache) Close() error { return nil }

// --- fixture ---

type fixture struct {
	store *memStore
	cache *fakeCache

	users         fakeUsers
	shayariRepo   fakeShayaris
	tokens        *auth.TokenManager
	hydrator      *Hydrator
	shayaris      ShayariService
	social        SocialService
	listings      ListingService
	profiles      UserService
	notifications NotificationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := newMemStore()
	users := fakeUsers{store}
	shayaris := fakeShayaris{store}
	likes := fakeLikes{store}
	saves := fakeSaves{store}
	follows := fakeFollows{store}
	comments := fakeComments{store}
	cache := &fakeCache{}
	logger := zap.NewNop()

	hydrator := NewHydrator(users, likes, saves)
	return &fixture{
		store:         store,
		cache:         cache,
		users:         users,
		shayariRepo:   shayaris,
		tokens:        auth.NewTokenManager("test-secret-test-secret-test-secret", time.Hour),
		hydrator:      hydrator,
		shayaris:      NewShayariService(shayaris, comments, users, hydrator, logger),
		social:        NewSocialService(shayaris, likes, saves, follows, comments, users, logger),
		listings:      NewListingService(shayaris, saves, follows, users, cache, hydrator, logger),
		profiles:      NewUserService(users, shayaris, follows, hydrator),
		notifications: NewNotificationService(fakeNotifications{store}, users, shayaris),
	}
}

// addUser creates a user and returns their session identity.
func (f *fixture) addUser(t *testing.T, username string) *auth.Identity {
	t.Helper()
	user := &models.User{
		Username:    username,
		Email:       username + "@example.com",
		DisplayName: strings.ToUpper(username[:1]) + username[1:],
	}
	require.NoError(t, f.users.CreateUser(context.Background(), user))
	return &auth.Identity{ID: user.ID, Username: user.Username, Email: user.Email}
}

// post creates a shayari through the service.
func (f *fixture) post(t *testing.T, author *auth.Identity, content, mood string) *models.ShayariView {
	t.Helper()
	view, err := f.shayaris.CreateShayari(context.Background(), author, models.CreateShayariRequest{
		Content: content,
		Mood:    mood,
	})
	require.NoError(t, err)
	return view
}

func (f *fixture) notificationsFor(userID uint) []models.Notification {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []models.Notification
	for _, n := range f.store.notifications {
		if n.RecipientID == userID {
			out = append(out, n)
		}
	}
	return out
}

func nopLogger() *zap.Logger { return zap.NewNop() }
