package service

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"productosml/internal/cache"
	"productosml/internal/models"
	"productosml/internal/recommender"
	"productosml/internal/repository"
	"productosml/internal/source"
	"productosml/internal/validation"
)

const (
	MaxN = 50 // por seguridad, no deja pedir 1000 productos
)

// Errores que el handler traduce a estados HTTP distintos.
var (
	ErrUpstream       = errors.New("error obteniendo datos del upstream")
	ErrInvalidPayload = errors.New("datos inválidos recibidos del upstream")
)

type RecommendService struct {
	src     *source.Client
	recRepo *repository.RecommendationRepository // nil si no hay Mongo

	defaultN     int
	cacheEnabled bool
	cacheTTL     int
}

func NewRecommendService(
	src *source.Client,
	recRepo *repository.RecommendationRepository,
	defaultN int,
	cacheEnabled bool,
	cacheTTL int,
) *RecommendService {
	return &RecommendService{
		src:          src,
		recRepo:      recRepo,
		defaultN:     defaultN,
		cacheEnabled: cacheEnabled,
		cacheTTL:     cacheTTL,
	}
}

type RecRequest struct {
	UserID  string
	N       int
	Refresh bool

	// callback opcional de progreso (lo usa el handler WebSocket)
	Progress func(stage string)
}

func (req *RecRequest) progress(stage string) {
	if req.Progress != nil {
		req.Progress(stage)
	}
}

// cachea por usuario + n + fingerprint del snapshot: un snapshot nuevo
// upstream invalida solo por cambio de key
func cacheKey(req RecRequest, fingerprint string) string {
	return fmt.Sprintf("rec:user:%s:n:%d:snap:%s", req.UserID, req.N, fingerprint)
}

// Recommend corre el ciclo completo: trae el snapshot, lo valida,
// reentrena el recomendador híbrido desde cero y consulta. El modelo
// vive solo dentro de esta llamada; no queda estado entre consultas.
func (s *RecommendService) Recommend(ctx context.Context, req RecRequest) ([]string, error) {
	if req.N <= 0 {
		req.N = s.defaultN
	} else if req.N > MaxN {
		req.N = MaxN
	}

	// 1) Snapshot fresco del upstream
	req.progress("fetching")
	body, err := s.src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	var snap models.SnapshotResponse
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if !validation.ValidateSnapshot(&snap) {
		return nil, ErrInvalidPayload
	}

	fingerprint := fmt.Sprintf("%x", sha256.Sum256(body))[:16]

	// 2) Cache Redis (extensión opt-in; por defecto siempre se reentrena)
	if s.cacheEnabled && !req.Refresh {
		var cached []string
		if ok, err := cache.GetJSON(ctx, cacheKey(req, fingerprint), &cached); err == nil && ok {
			return cached, nil
		}
	}

	// 3) Entrenar y consultar. Instancia nueva por request: el estado del
	// reentrenamiento es local a esta consulta, no ambiente.
	req.progress("training")
	rec := recommender.NewHybridRecommender()
	if err := rec.Train(snap.Data); err != nil {
		return nil, err
	}

	req.progress("ranking")
	items := rec.Recommend(req.UserID, req.N)

	// 4) Guardar historial en Mongo (no rompemos la respuesta si falla)
	if s.recRepo != nil {
		hist := &models.Recommendation{
			UserID: req.UserID,
			Algo:   "hybrid",
			Params: map[string]any{
				"n":        req.N,
				"snapshot": fingerprint,
				"refresh":  req.Refresh,
			},
			Items:     items,
			CreatedAt: time.Now(),
		}
		if err := s.recRepo.Insert(ctx, hist); err != nil {
			log.Printf("error guardando recomendación en Mongo: %v", err)
		}
	}

	// 5) Cachear en Redis
	if s.cacheEnabled {
		if err := cache.SetJSON(ctx, cacheKey(req, fingerprint), items, s.cacheTTL); err != nil {
			log.Printf("error cacheando recomendación en Redis: %v", err)
		}
	}

	return items, nil
}

// History devuelve el historial persistido de un usuario, si hay Mongo.
func (s *RecommendService) History(ctx context.Context, userID string, limit int64) ([]models.Recommendation, error) {
	if s.recRepo == nil {
		return nil, fmt.Errorf("historial deshabilitado (sin MONGO_URI)")
	}
	return s.recRepo.FindByUser(ctx, userID, limit)
}
