package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/culina/v2/internal/domain/category"
	"github.com/culina/v2/internal/domain/plan"
	"github.com/culina/v2/internal/domain/recipe"
	"github.com/culina/v2/internal/ports/inbound"
	"github.com/culina/v2/internal/ports/outbound"
)

// Typed pipeline failures. Callers branch on these with errors.Is; the
// wrapped detail carries the upstream message when there is one.
var (
	// ErrGenerationFailed means the provider call itself failed
	// (transport, quota, upstream error body).
	ErrGenerationFailed = errors.New("ai generation failed")

	// ErrUnparseableResponse means the provider answered but no JSON
	// object could be recovered from the envelope, even after repair.
	ErrUnparseableResponse = errors.New("ai response not parseable")

	// ErrEmptyPlan means reconciliation rejected every slot of every
	// day; the warning list explains what was dropped.
	ErrEmptyPlan = errors.New("no plan slot could be reconciled")
)

// Operation purposes, used for logging and cache keys.
const (
	PurposeGenerate   = "generate_recipe"
	PurposeCategorize = "categorize_ingredient"
	PurposeImport     = "import_recipe"
	PurposePlan       = "weekly_plan"
)

// Per-operation sampling. Creative operations run warm; classification
// runs near-deterministic. Plan generation sends no response schema
// because the date-keyed top level cannot be expressed as fixed
// properties.
var samplingByPurpose = map[string]outbound.GenerationConfig{
	PurposeGenerate:   {Temperature: 0.65, TopP: 0.9, TopK: 40, ResponseMIMEType: "application/json", ResponseSchema: recipeSchema},
	PurposeCategorize: {Temperature: 0.2, TopP: 0.95, TopK: 40, ResponseMIMEType: "application/json", ResponseSchema: categorySchema},
	PurposeImport:     {Temperature: 0.5, TopP: 0.95, TopK: 40, ResponseMIMEType: "application/json", ResponseSchema: recipeSchema},
	PurposePlan:       {Temperature: 0.6, TopP: 0.95, TopK: 40, ResponseMIMEType: "application/json"},
}

// Service is the reconciliation engine. It owns prompt construction,
// the provider round trip, extraction and validation; it holds no
// state between calls.
type Service struct {
	client outbound.AIClient
	logger *zap.Logger
}

// NewService creates the engine around a provider client.
func NewService(client outbound.AIClient, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// invoke runs one full round trip for a purpose and hands back the
// extracted candidate object. The candidate is non-nil whenever the
// error is nil.
func (s *Service) invoke(ctx context.Context, purpose, language, prompt string, schema []byte) (map[string]any, error) {
	req := outbound.AIRequest{
		Purpose:    purpose,
		Language:   language,
		Prompt:     prompt,
		Generation: samplingByPurpose[purpose],
	}
	if schema != nil {
		req.SystemInstruction = systemInstruction(tableFor(language), schema)
	}

	env, err := s.client.Generate(ctx, req)
	if err != nil {
		s.logger.Warn("ai generation failed",
			zap.String("purpose", purpose),
			zap.String("language", language),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	candidate := extractCandidate(env)
	if candidate == nil {
		s.logger.Warn("ai response unparseable",
			zap.String("purpose", purpose),
			zap.String("language", language))
		return nil, ErrUnparseableResponse
	}
	return candidate, nil
}

// GenerateRecipe builds a recipe from the caller's stock and
// constraints. The returned recipe is shape-coerced; title presence is
// the caller's acceptance criterion, not a pipeline failure.
func (s *Service) GenerateRecipe(ctx context.Context, cmd inbound.GenerateRecipeCommand) (*recipe.Recipe, []plan.Warning, error) {
	table := tableFor(cmd.Language)
	candidate, err := s.invoke(ctx, PurposeGenerate, cmd.Language, buildGeneratePrompt(table, cmd), recipeSchema)
	if err != nil {
		return nil, nil, err
	}

	r := recipe.FromCandidate(candidate)
	s.logger.Info("recipe generated",
		zap.String("language", cmd.Language),
		zap.String("title", r.Title),
		zap.Bool("has_title", r.HasTitle()))
	return r, nil, nil
}

// CategorizeIngredient resolves one ingredient name to a taxonomy
// category. Resolution is total: anything the model answers outside the
// taxonomy lands on the default category rather than failing.
func (s *Service) CategorizeIngredient(ctx context.Context, cmd inbound.CategorizeCommand) (category.Category, error) {
	table := tableFor(cmd.Language)
	candidate, err := s.invoke(ctx, PurposeCategorize, cmd.Language, buildCategorizePrompt(table, cmd), categorySchema)
	if err != nil {
		return "", err
	}

	raw, _ := candidate["category"].(string)
	resolved := category.Resolve(raw)
	s.logger.Debug("ingredient categorized",
		zap.String("ingredient", cmd.Ingredient),
		zap.String("raw", raw),
		zap.String("category", string(resolved)))
	return resolved, nil
}

// ImportRecipe structures free-form recipe text into a recipe record.
func (s *Service) ImportRecipe(ctx context.Context, cmd inbound.ImportRecipeCommand) (*recipe.Recipe, []plan.Warning, error) {
	table := tableFor(cmd.Language)
	candidate, err := s.invoke(ctx, PurposeImport, cmd.Language, buildImportPrompt(table, cmd), recipeSchema)
	if err != nil {
		return nil, nil, err
	}

	r := recipe.FromCandidate(candidate)
	s.logger.Info("recipe imported",
		zap.String("language", cmd.Language),
		zap.String("title", r.Title))
	return r, nil, nil
}

// GenerateWeeklyPlan asks for a week of meals over the caller's catalog
// and reconciles the answer against it. Warnings are returned alongside
// a usable plan; a plan with nothing usable is ErrEmptyPlan.
func (s *Service) GenerateWeeklyPlan(ctx context.Context, cmd inbound.GeneratePlanCommand) (plan.WeeklyPlan, []plan.Warning, error) {
	table := tableFor(cmd.Language)

	serialized, err := json.Marshal(cmd.Catalog)
	if err != nil {
		return nil, nil, fmt.Errorf("serialize catalog: %w", err)
	}

	candidate, err := s.invoke(ctx, PurposePlan, cmd.Language, buildPlanPrompt(table, cmd, string(serialized)), nil)
	if err != nil {
		return nil, nil, err
	}

	result, warnings := plan.Reconcile(candidate, cmd.Catalog)
	if result == nil {
		s.logger.Warn("weekly plan fully rejected",
			zap.Int("warnings", len(warnings)))
		return nil, warnings, ErrEmptyPlan
	}

	s.logger.Info("weekly plan reconciled",
		zap.Int("days", len(result)),
		zap.Int("warnings", len(warnings)))
	return result, warnings, nil
}

var _ inbound.AssistantService = (*Service)(nil)
