package api

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"recipebox/internal/config"
	"recipebox/internal/logging"
	"recipebox/internal/recipes"
)

// Store is the subset of recipes.Store the boundary depends on.
type Store interface {
	ListCookbooks(ctx context.Context) ([]recipes.Cookbook, error)
	GetCookbook(ctx context.Context, id int64) (*recipes.Cookbook, error)
	CreateCookbook(ctx context.Context, name string) (*recipes.Cookbook, error)
	RenameCookbook(ctx context.Context, id int64, name string) error
	DeleteCookbook(ctx context.Context, id int64) error
	ListRecipes(ctx context.Context, cookbookID int64) ([]recipes.RecipeSummary, error)
	SearchRecipes(ctx context.Context, cookbookID int64, term string) ([]recipes.RecipeSummary, error)
	GetRecipe(ctx context.Context, recipeID int64) (*recipes.RecipeDetail, error)
	CreateRecipe(ctx context.Context, in recipes.NewRecipe) (int64, error)
	UpdateRecipe(ctx context.Context, recipeID int64, patch recipes.RecipePatch) error
	DeleteRecipe(ctx context.Context, recipeID int64) error
	IncrementUses(ctx context.Context, recipeID int64) (int, error)
	DecrementUses(ctx context.Context, recipeID int64) (int, error)
	AddTag(ctx context.Context, recipeID int64, name string) error
	RemoveTag(ctx context.Context, recipeID int64, name string) error
	ListTagNames(ctx context.Context) ([]string, error)
	AddLike(ctx context.Context, recipeID int64, name string) error
	RemoveLike(ctx context.Context, recipeID int64, name string) error
	IngredientSuggestions(ctx context.Context, q recipes.SuggestionQuery) ([]string, error)
}

// Service validates requests, forwards them to the store, and shapes the
// results for callers.
type Service struct {
	store  Store
	limits config.Limits
	logger *slog.Logger
}

// NewService wraps store. A nil cfg falls back to default limits.
func NewService(store Store, cfg *config.Config, logger *slog.Logger) *Service {
	limits := config.Default().Limits
	if cfg != nil {
		limits = cfg.Limits
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{
		store:  store,
		limits: limits,
		logger: logging.NewComponentLogger(logger, "api"),
	}
}

// begin tags ctx with a correlation id and the operation name.
func (s *Service) begin(ctx context.Context, op string) (context.Context, *slog.Logger) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := logging.RequestIDFromContext(ctx); !ok {
		ctx = logging.WithRequestID(ctx, uuid.NewString())
	}
	ctx = logging.WithOperation(ctx, op)
	return ctx, logging.WithContext(ctx, s.logger)
}

// fail converts err for the caller and logs storage failures in full.
func (s *Service) fail(logger *slog.Logger, err error) error {
	if err == nil {
		return nil
	}
	out := translate(err)
	if out.Kind == KindInternal {
		logging.ErrorWithContext(logger, "request failed", "storage_failure", logging.Error(err))
	} else {
		logger.Debug("request rejected", logging.String("kind", out.Kind), logging.String("reason", out.Message))
	}
	return out
}

func (s *Service) ready(logger *slog.Logger) error {
	if s.store == nil {
		logging.ErrorWithContext(logger, "store unavailable", "store_unavailable")
		return &Error{Kind: KindInternal, Message: internalMessage}
	}
	return nil
}

// ListCookbooks returns every cookbook ordered by creation time.
func (s *Service) ListCookbooks(ctx context.Context) ([]Cookbook, error) {
	ctx, logger := s.begin(ctx, "list cookbooks")
	if err := s.ready(logger); err != nil {
		return nil, err
	}
	rows, err := s.store.ListCookbooks(ctx)
	if err != nil {
		return nil, s.fail(logger, err)
	}
	out := make([]Cookbook, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromCookbook(row))
	}
	return out, nil
}

// GetCookbook returns one cookbook with its recipe count.
func (s *Service) GetCookbook(ctx context.Context, id int64) (*Cookbook, error) {
	ctx, logger := s.begin(ctx, "get cookbook")
	if err := s.ready(logger); err != nil {
		return nil, err
	}
	v := newValidator(s.limits)
	v.id("cookbookId", id)
	if err := v.result(); err != nil {
		return nil, s.fail(logger, err)
	}
	row, err := s.store.GetCookbook(ctx, id)
	if err != nil {
		return nil, s.fail(logger, err)
	}
	out := FromCookbook(*row)
	return &out, nil
}

// CreateCookbook creates a cookbook with the given name.
func (s *Service) CreateCookbook(ctx context.Context, name string) (*Cookbook, error) {
	ctx, logger := s.begin(ctx, "create cookbook")
	if err := s.ready(logger); err != nil {
		return nil, err
	}
	v := newValidator(s.limits)
	v.required("name", name, s.limits.MaxNameLength)
	if err := v.result(); err != nil {
		return nil, s.fail(logger, err)
	}
	row, err := s.store.CreateCookbook(ctx, name)
	if err != nil {
		return nil, s.fail(logger, err)
	}
	out := FromCookbook(*row)
	return &out, nil
}

// RenameCookbook changes a cookbook's name.
func (s *Service) RenameCookbook(ctx context.Context, id int64, name string) error {
	ctx, logger := s.begin(ctx, "rename cookbook")
	if err := s.ready(logger); err != nil {
		return err
	}
	v := newValidator(s.limits)
	v.id("cookbookId", id)
	v.required("name", name, s.limits.MaxNameLength)
	if err := v.result(); err != nil {
		return s.fail(logger, err)
	}
	return s.fail(logger, s.store.RenameCookbook(ctx, id, name))
}

// DeleteCookbook removes a cookbook and everything in it.
func (s *Service) DeleteCookbook(ctx context.Context, id int64) error {
	ctx, logger := s.begin(ctx, "delete cookbook")
	if err := s.ready(logger); err != nil {
		return err
	}
	v := newValidator(s.limits)
	v.id("cookbookId", id)
	if err := v.result(); err != nil {
		return s.fail(logger, err)
	}
	return s.fail(logger, s.store.DeleteCookbook(ctx, id))
}

// ListRecipes returns the cookbook's recipes ordered by title.
func (s *Service) ListRecipes(ctx context.Context, cookbookID int64) ([]RecipeSummary, error) {
	ctx, logger := s.begin(ctx, "list recipes")
	if err := s.ready(logger); err != nil {
		return nil, err
	}
	v := newValidator(s.limits)
	v.id("cookbookId", cookbookID)
	if err := v.result(); err != nil {
		return nil, s.fail(logger, err)
	}
	rows, err := s.store.ListRecipes(ctx, cookbookID)
	if err != nil {
		return nil, s.fail(logger, err)
	}
	return fromSummaries(rows), nil
}

// SearchRecipes matches term against titles, descriptions, tags, likers and
// ingredients. A blank term lists the whole cookbook.
func (s *Service) SearchRecipes(ctx context.Context, cookbookID int64, term string) ([]RecipeSummary, error) {
	ctx, logger := s.begin(ctx, "search recipes")
	if err := s.ready(logger); err != nil {
		return nil, err
	}
	v := newValidator(s.limits)
	v.id("cookbookId", cookbookID)
	v.length("term", term, s.limits.MaxTextLength)
	if err := v.result(); err != nil {
		return nil, s.fail(logger, err)
	}
	rows, err := s.store.SearchRecipes(ctx, cookbookID, term)
	if err != nil {
		return nil, s.fail(logger, err)
	}
	return fromSummaries(rows), nil
}

// GetRecipe returns the full recipe.
func (s *Service) GetRecipe(ctx context.Context, id int64) (*RecipeDetail, error) {
	ctx, logger := s.begin(ctx, "get recipe")
	if err := s.ready(logger); err != nil {
		return nil, err
	}
	v := newValidator(s.limits)
	v.id("id", id)
	if err := v.result(); err != nil {
		return nil, s.fail(logger, err)
	}
	row, err := s.store.GetRecipe(ctx, id)
	if err != nil {
		return nil, s.fail(logger, err)
	}
	out := FromDetail(*row)
	return &out, nil
}

func (s *Service) validateCreate(req CreateRecipeRequest) error {
	v := newValidator(s.limits)
	v.id("cookbookId", req.CookbookID)
	v.required("title", req.Title, s.limits.MaxTitleLength)
	v.length("description", req.Description, s.limits.MaxTextLength)
	v.length("author", req.Author, s.limits.MaxNameLength)
	v.photo(req.PhotoDataURL)
	v.servings(req.Servings, true)
	v.ingredients(req.Ingredients)
	v.steps(req.Steps)
	v.length("notes", req.Notes, s.limits.MaxTextLength)
	v.tags(req.Tags)
	return v.result()
}

// CreateRecipe stores a new recipe with all of its children.
func (s *Service) CreateRecipe(ctx context.Context, req CreateRecipeRequest) (*CreatedResponse, error) {
	ctx, logger := s.begin(ctx, "create recipe")
	if err := s.ready(logger); err != nil {
		return nil, err
	}
	if err := s.validateCreate(req); err != nil {
		return nil, s.fail(logger, err)
	}
	id, err := s.store.CreateRecipe(ctx, toNewRecipe(req))
	if err != nil {
		return nil, s.fail(logger, err)
	}
	return &CreatedResponse{ID: id}, nil
}

func (s *Service) validateUpdate(id int64, req UpdateRecipeRequest) error {
	v := newValidator(s.limits)
	v.id("id", id)
	switch {
	case req.CookbookID.Set && req.CookbookID.Null:
		v.fail("cookbookId must not be null")
	case req.Title.Set && req.Title.Null:
		v.fail("title must not be null")
	case req.Servings.Set && req.Servings.Null:
		v.fail("servings must not be null")
	}
	if req.CookbookID.Present() {
		v.id("cookbookId", req.CookbookID.Value)
	}
	if req.Title.Present() {
		v.required("title", req.Title.Value, s.limits.MaxTitleLength)
	}
	v.length("description", req.Description.Value, s.limits.MaxTextLength)
	v.length("author", req.Author.Value, s.limits.MaxNameLength)
	if req.PhotoDataURL.Present() {
		v.photo(&req.PhotoDataURL.Value)
	}
	if req.Servings.Present() {
		v.servings(req.Servings.Value, false)
	}
	v.ingredients(req.Ingredients.Value)
	v.steps(req.Steps.Value)
	v.length("notes", req.Notes.Value, s.limits.MaxTextLength)
	v.tags(req.Tags.Value)
	return v.result()
}

// UpdateRecipe applies a sparse patch. Fields absent from req are untouched.
func (s *Service) UpdateRecipe(ctx context.Context, id int64, req UpdateRecipeRequest) error {
	ctx, logger := s.begin(ctx, "update recipe")
	if err := s.ready(logger); err != nil {
		return err
	}
	if err := s.validateUpdate(id, req); err != nil {
		return s.fail(logger, err)
	}
	if err := s.store.UpdateRecipe(ctx, id, toPatch(req)); err != nil {
		return s.fail(logger, err)
	}
	return nil
}

// DeleteRecipe removes a recipe and its children.
func (s *Service) DeleteRecipe(ctx context.Context, id int64) error {
	ctx, logger := s.begin(ctx, "delete recipe")
	if err := s.ready(logger); err != nil {
		return err
	}
	v := newValidator(s.limits)
	v.id("id", id)
	if err := v.result(); err != nil {
		return s.fail(logger, err)
	}
	if err := s.store.DeleteRecipe(ctx, id); err != nil {
		return s.fail(logger, err)
	}
	return nil
}

// IncrementUses bumps the recipe's use counter.
func (s *Service) IncrementUses(ctx context.Context, id int64) (*UsesResponse, error) {
	return s.adjustUses(ctx, "increment uses", id, s.storeIncrement)
}

// DecrementUses lowers the recipe's use counter, never below zero.
func (s *Service) DecrementUses(ctx context.Context, id int64) (*UsesResponse, error) {
	return s.adjustUses(ctx, "decrement uses", id, s.storeDecrement)
}

func (s *Service) storeIncrement(ctx context.Context, id int64) (int, error) {
	return s.store.IncrementUses(ctx, id)
}

func (s *Service) storeDecrement(ctx context.Context, id int64) (int, error) {
	return s.store.DecrementUses(ctx, id)
}

func (s *Service) adjustUses(ctx context.Context, op string, id int64, apply func(context.Context, int64) (int, error)) (*UsesResponse, error) {
	ctx, logger := s.begin(ctx, op)
	if err := s.ready(logger); err != nil {
		return nil, err
	}
	v := newValidator(s.limits)
	v.id("id", id)
	if err := v.result(); err != nil {
		return nil, s.fail(logger, err)
	}
	uses, err := apply(ctx, id)
	if err != nil {
		return nil, s.fail(logger, err)
	}
	return &UsesResponse{Uses: uses}, nil
}

func (s *Service) label(ctx context.Context, op string, id int64, name string, apply func(context.Context, int64, string) error) error {
	ctx, logger := s.begin(ctx, op)
	if err := s.ready(logger); err != nil {
		return err
	}
	v := newValidator(s.limits)
	v.id("id", id)
	v.required("name", name, s.limits.MaxNameLength)
	if err := v.result(); err != nil {
		return s.fail(logger, err)
	}
	return s.fail(logger, apply(ctx, id, name))
}

// AddTag links a tag to the recipe, creating it when new.
func (s *Service) AddTag(ctx context.Context, id int64, name string) error {
	return s.label(ctx, "add tag", id, name, func(ctx context.Context, id int64, name string) error {
		return s.store.AddTag(ctx, id, name)
	})
}

// RemoveTag unlinks a tag. Unknown tags are a no-op.
func (s *Service) RemoveTag(ctx context.Context, id int64, name string) error {
	return s.label(ctx, "remove tag", id, name, func(ctx context.Context, id int64, name string) error {
		return s.store.RemoveTag(ctx, id, name)
	})
}

// AddLike records that name likes the recipe.
func (s *Service) AddLike(ctx context.Context, id int64, name string) error {
	return s.label(ctx, "add like", id, name, func(ctx context.Context, id int64, name string) error {
		return s.store.AddLike(ctx, id, name)
	})
}

// RemoveLike drops name's like. Missing likes are a no-op.
func (s *Service) RemoveLike(ctx context.Context, id int64, name string) error {
	return s.label(ctx, "remove like", id, name, func(ctx context.Context, id int64, name string) error {
		return s.store.RemoveLike(ctx, id, name)
	})
}

// ListAllTags returns every known tag name.
func (s *Service) ListAllTags(ctx context.Context) ([]string, error) {
	ctx, logger := s.begin(ctx, "list tags")
	if err := s.ready(logger); err != nil {
		return nil, err
	}
	names, err := s.store.ListTagNames(ctx)
	if err != nil {
		return nil, s.fail(logger, err)
	}
	return nonNil(names), nil
}

// ListIngredientSuggestions returns catalog names in use, optionally scoped
// to a cookbook and filtered by query. At most limits.max_suggestions names
// are returned when req.Limit is nil; an explicit limit may lower that cap
// but never raise it. A non-positive limit is a validation error.
func (s *Service) ListIngredientSuggestions(ctx context.Context, req SuggestionRequest) ([]string, error) {
	ctx, logger := s.begin(ctx, "ingredient suggestions")
	if err := s.ready(logger); err != nil {
		return nil, err
	}
	v := newValidator(s.limits)
	q := recipes.SuggestionQuery{Query: req.Query, Limit: s.limits.MaxSuggestions}
	if req.CookbookID != nil {
		v.id("cookbookId", *req.CookbookID)
		q.CookbookID = *req.CookbookID
	}
	if req.Limit != nil {
		if *req.Limit <= 0 {
			v.fail("limit must be a positive integer")
		} else if q.Limit <= 0 || *req.Limit < q.Limit {
			q.Limit = *req.Limit
		}
	}
	v.length("query", req.Query, s.limits.MaxNameLength)
	if err := v.result(); err != nil {
		return nil, s.fail(logger, err)
	}
	names, err := s.store.IngredientSuggestions(ctx, q)
	if err != nil {
		return nil, s.fail(logger, err)
	}
	return nonNil(names), nil
}
