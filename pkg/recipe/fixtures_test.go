package recipe

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	migration "Go-Recipe-Hub/cmd/database/migrate"
	"Go-Recipe-Hub/domain"
	"Go-Recipe-Hub/entities"
	"Go-Recipe-Hub/internal/utils/storage"
	"Go-Recipe-Hub/pkg/user"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const fakeBaseURL = "https://cdn.test"

var errUploadRefused = errors.New("upload refused")

// fakeStore keeps objects in memory. Files whose name contains "fail" are refused.
type fakeStore struct {
	mu      sync.Mutex
	seq     int
	objects map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string]bool{}}
}

func (f *fakeStore) UploadFile(_ context.Context, file *multipart.FileHeader, isVideo bool, folder string) (string, error) {
	if file == nil {
		return "", errMissingFile
	}
	if strings.Contains(file.Filename, "fail") {
		return "", errUploadRefused
	}
	mtype, err := storage.DetectMediaType(file)
	if err != nil {
		return "", err
	}
	if err := storage.CheckAllowed(mtype, isVideo); err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	key := fmt.Sprintf("%s/%d%s", folder, f.seq, mtype.Extension())
	f.objects[key] = true
	return f.GetPublicLinkKey(key), nil
}

func (f *fakeStore) IsVideoFile(file *multipart.FileHeader) (bool, error) {
	return storage.IsVideoContent(file)
}

func (f *fakeStore) DeleteFile(_ context.Context, objectKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, objectKey)
	return nil
}

func (f *fakeStore) GetObjectKeyFromLink(link string) string {
	if !strings.HasPrefix(link, fakeBaseURL+"/") {
		return ""
	}
	return strings.TrimPrefix(link, fakeBaseURL+"/")
}

func (f *fakeStore) GetPublicLinkKey(objectKey string) string {
	return fakeBaseURL + "/" + objectKey
}

func (f *fakeStore) has(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.objects[f.GetObjectKeyFromLink(url)]
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

// fakeEngagement returns fixed values, or err for every call when set.
type fakeEngagement struct {
	likes    int64
	comments []*entities.RecipeComment
	liked    bool
	err      error
}

func (f *fakeEngagement) CountLikes(context.Context, uint) (int64, error) {
	return f.likes, f.err
}

func (f *fakeEngagement) CountLikesByRecipes(_ context.Context, ids []uint) (map[uint]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := map[uint]int64{}
	for _, id := range ids {
		result[id] = f.likes
	}
	return result, nil
}

func (f *fakeEngagement) CountShares(context.Context, uint) (int64, error) {
	return 0, f.err
}

func (f *fakeEngagement) CountComments(context.Context, uint) (int64, error) {
	return int64(len(f.comments)), f.err
}

func (f *fakeEngagement) ListComments(context.Context, uint) ([]*entities.RecipeComment, error) {
	return f.comments, f.err
}

func (f *fakeEngagement) HasLiked(context.Context, uint, uint) (bool, error) {
	return f.liked, f.err
}

func (f *fakeEngagement) HasSaved(context.Context, uint, uint) (bool, error) {
	return false, f.err
}

func (f *fakeEngagement) IsFollowing(context.Context, uint, uint) (bool, error) {
	return false, f.err
}

type testEnv struct {
	db         *gorm.DB
	repo       RecipeRepository
	users      user.UserRepository
	store      *fakeStore
	engagement *fakeEngagement
	svc        *recipeService
	owner      *entities.User
	other      *entities.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "recipes.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migration.Migrate(db, nil))

	env := &testEnv{
		db:         db,
		repo:       NewRecipeRepository(db),
		users:      user.NewUserRepository(db),
		store:      newFakeStore(),
		engagement: &fakeEngagement{},
	}
	env.svc = env.service(env.repo, nil)

	ctx := context.Background()
	env.owner = &entities.User{Email: "owner@example.com", FullName: "Bếp Trưởng"}
	env.other = &entities.User{Email: "other@example.com", FullName: "Khách"}
	require.NoError(t, env.users.CreateUser(ctx, env.owner))
	require.NoError(t, env.users.CreateUser(ctx, env.other))
	return env
}

// service builds a recipe service over repo; a nil resolver resolves against repo's tables.
func (e *testEnv) service(repo RecipeRepository, resolver Resolver) *recipeService {
	if resolver == nil {
		resolver = NewResolver(repo.IngredientTable(), repo.TypeTable())
	}
	return NewRecipeService(repo, resolver, e.users, e.engagement, e.store, zap.NewNop()).(*recipeService)
}

func validInput(steps ...domain.StepInput) domain.RecipeInput {
	if len(steps) == 0 {
		steps = []domain.StepInput{{Description: "Đập trứng"}}
	}
	return domain.RecipeInput{
		Name:        "Trứng chiên",
		Description: "Món nhanh",
		CookTime:    15,
		Level:       "dễ",
		Ingredients: []string{"Trứng", "Hành lá"},
		Types:       []string{"Món chính"},
		Steps:       steps,
	}
}

func (e *testEnv) create(t *testing.T, in domain.RecipeInput, mainMedia *multipart.FileHeader) uint {
	t.Helper()
	res, err := e.svc.CreateRecipe(context.Background(), domain.CreateRecipeRequest{RecipeInput: in, MainMedia: mainMedia}, e.owner.ID)
	require.NoError(t, err)
	require.NotZero(t, res.ID)
	return res.ID
}

func (e *testEnv) countRows(t *testing.T, model any, recipeID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Where("recipe_id = ?", recipeID).Count(&n).Error)
	return n
}

func mediaURLs(step domain.StepDetail) []string {
	urls := make([]string, 0, len(step.Media))
	for _, m := range step.Media {
		urls = append(urls, m.URL)
	}
	return urls
}

func displayOrders(step domain.StepDetail) []int {
	orders := make([]int, 0, len(step.Media))
	for _, m := range step.Media {
		orders = append(orders, m.DisplayOrder)
	}
	return orders
}
