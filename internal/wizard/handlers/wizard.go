package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"bedrot-sim/internal/wizard/capture"
	"bedrot-sim/internal/wizard/catalog"
	"bedrot-sim/internal/wizard/mapper"
	"bedrot-sim/internal/wizard/models"
	"bedrot-sim/internal/wizard/repository"
	"bedrot-sim/internal/wizard/scoring"
	"bedrot-sim/internal/wizard/service"
	"bedrot-sim/internal/wizard/store"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ============================================================
// Wizard Handler
// ============================================================

type WizardHandler struct {
	sessions   *service.SessionManager
	repo       *repository.Repository
	storage    *service.ExportStorage
	rasterizer *capture.Rasterizer
	renderer   *mapper.Renderer
	catalog    *catalog.Catalog
	shareURL   string
	logger     *zap.Logger
	now        func() time.Time
}

type Deps struct {
	Sessions   *service.SessionManager
	Repo       *repository.Repository
	Storage    *service.ExportStorage
	Rasterizer *capture.Rasterizer
	Renderer   *mapper.Renderer
	Catalog    *catalog.Catalog
	ShareURL   string
	Logger     *zap.Logger
}

func NewWizardHandler(d Deps) *WizardHandler {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WizardHandler{
		sessions:   d.Sessions,
		repo:       d.Repo,
		storage:    d.Storage,
		rasterizer: d.Rasterizer,
		renderer:   d.Renderer,
		catalog:    d.Catalog,
		shareURL:   d.ShareURL,
		logger:     logger,
		now:        time.Now,
	}
}

// Register вешает маршруты мастера на группу API.
func (h *WizardHandler) Register(api fiber.Router) {
	api.Get("/catalog", h.GetCatalog)

	api.Post("/sessions", h.CreateSession)
	api.Get("/sessions/:id", h.GetSession)
	api.Delete("/sessions/:id", h.DeleteSession)
	api.Post("/sessions/:id/intents", h.ApplyIntent)
	api.Get("/sessions/:id/scene", h.GetScene)
	api.Get("/sessions/:id/scene.svg", h.GetSceneSVG)
	api.Get("/sessions/:id/stats", h.GetStats)
	api.Get("/sessions/:id/share", h.GetShare)
	api.Post("/sessions/:id/export", h.Export)

	api.Get("/exports", h.ListExports)
	api.Get("/exports/:id", h.GetExport)
}

// ============================================================
// Payloads
// ============================================================

// Cue - звук, который клиент проигрывает после действия.
type Cue struct {
	Name   string  `json:"name"`
	Src    string  `json:"src"`
	Volume float64 `json:"volume"`
}

var (
	cueClick = Cue{Name: "click", Src: "/sounds/click.wav", Volume: 0.5}
	cuePage  = Cue{Name: "page", Src: "/sounds/page.wav", Volume: 0.4}
)

type sessionPayload struct {
	ID        string           `json:"id"`
	Step      int              `json:"step"`
	StepInfo  catalog.Step     `json:"step_info"`
	Selection models.Selection `json:"selection"`
	Cue       *Cue             `json:"cue,omitempty"`
}

type statsPayload struct {
	Stats   models.Stats `json:"stats"`
	Caption string       `json:"caption"`
	Summary []string     `json:"summary"`
}

// ============================================================
// Catalog & Sessions
// ============================================================

// GetCatalog отдаёт шаги мастера и варианты выбора.
func (h *WizardHandler) GetCatalog(c fiber.Ctx) error {
	return c.JSON(h.catalog)
}

// CreateSession заводит новую сессию с пустым выбором.
func (h *WizardHandler) CreateSession(c fiber.Ctx) error {
	id, st := h.sessions.Create()
	h.logger.Info("session created", zap.String("session", id))
	return c.Status(http.StatusCreated).JSON(h.payload(id, st, nil))
}

// GetSession возвращает текущий выбор и шаг.
func (h *WizardHandler) GetSession(c fiber.Ctx) error {
	id, st, err := h.session(c)
	if err != nil {
		return err
	}
	return c.JSON(h.payload(id, st, nil))
}

// DeleteSession - "новая игра": состояние сессии выбрасывается.
func (h *WizardHandler) DeleteSession(c fiber.Ctx) error {
	if !h.sessions.Delete(c.Params("id")) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}
	return c.SendStatus(http.StatusNoContent)
}

// ApplyIntent применяет одно действие пользователя к store сессии.
func (h *WizardHandler) ApplyIntent(c fiber.Ctx) error {
	id, st, err := h.session(c)
	if err != nil {
		return err
	}

	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "empty body"})
	}

	var intent models.Intent
	if err := json.Unmarshal(c.Body(), &intent); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	intent, err = normalizeIntent(intent)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if _, _, err := st.Apply(intent); err != nil {
		if errors.Is(err, store.ErrUnknownAction) {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return err
	}

	cue := cueClick
	if intent.IsNavigation() {
		cue = cuePage
	}
	return c.JSON(h.payload(id, st, &cue))
}

// ============================================================
// Scene & Stats
// ============================================================

// GetScene отдаёт послойное описание сцены для рендера.
func (h *WizardHandler) GetScene(c fiber.Ctx) error {
	_, st, err := h.session(c)
	if err != nil {
		return err
	}
	sel, step := st.View()
	return c.JSON(mapper.Compose(sel, step))
}

// GetSceneSVG отдаёт превью сцены в SVG.
func (h *WizardHandler) GetSceneSVG(c fiber.Ctx) error {
	_, st, err := h.session(c)
	if err != nil {
		return err
	}
	sel, step := st.View()
	scene := mapper.Compose(sel, step)

	svg, err := h.renderer.Render(&scene)
	if err != nil {
		h.logger.Error("render svg failed", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(svg)
}

// GetStats считает статистику из текущего выбора (никогда не кэшируется).
func (h *WizardHandler) GetStats(c fiber.Ctx) error {
	_, st, err := h.session(c)
	if err != nil {
		return err
	}
	stats := scoring.Compute(st.Snapshot())
	return c.JSON(statsPayload{
		Stats:   stats,
		Caption: scoring.Caption(stats),
		Summary: scoring.Summary(stats),
	})
}

// GetShare собирает подпись и ссылку для соцсетей.
func (h *WizardHandler) GetShare(c fiber.Ctx) error {
	_, st, err := h.session(c)
	if err != nil {
		return err
	}
	stats := scoring.Compute(st.Snapshot())
	return c.JSON(capture.ShareIntent(stats, h.shareURL, h.now()))
}

// ============================================================
// Export
// ============================================================

// Export рендерит PNG, сохраняет его и записывает в журнал экспортов.
// Ошибки захвата не трогают выбор пользователя.
func (h *WizardHandler) Export(c fiber.Ctx) error {
	id, st, err := h.session(c)
	if err != nil {
		return err
	}

	sel := st.Snapshot()
	scene := mapper.Compose(sel, models.FinalStep)

	data, err := h.rasterizer.Capture(c.Context(), &scene)
	if err != nil {
		h.logger.Error("capture failed", zap.String("session", id), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "could not create image"})
	}

	now := h.now()
	fileName := capture.FileName(now)
	path, err := h.storage.Save(id, fileName, data)
	if err != nil {
		h.logger.Error("save export failed", zap.String("session", id), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "could not save image"})
	}

	export := &models.Export{
		ID:        uuid.NewString(),
		SessionID: id,
		FileName:  fileName,
		Path:      path,
		Stats:     *scene.Stats,
		Caption:   scoring.Caption(*scene.Stats),
	}
	if err := h.repo.RecordExport(c.Context(), export); err != nil {
		h.logger.Error("record export failed", zap.String("session", id), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "could not record export"})
	}

	h.logger.Info("export created",
		zap.String("session", id),
		zap.String("export", export.ID),
		zap.String("rank", string(export.Stats.Rank)),
		zap.Int("bytes", len(data)))

	c.Set("X-Export-Id", export.ID)
	c.Attachment(fileName)
	c.Type("png")
	return c.Send(data)
}

// ListExports возвращает последние экспорты.
func (h *WizardHandler) ListExports(c fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(repository.DefaultListLimit)))
	exports, err := h.repo.ListExports(c.Context(), limit)
	if err != nil {
		h.logger.Error("list exports failed", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list exports"})
	}
	return c.JSON(exports)
}

// GetExport отдаёт сохранённый PNG.
func (h *WizardHandler) GetExport(c fiber.Ctx) error {
	export, err := h.repo.GetExport(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "export not found"})
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load export"})
	}

	if _, err := os.Stat(export.Path); err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "file not found"})
	}

	c.Set("Content-Type", "image/png")
	c.Attachment(export.FileName)
	return c.SendFile(export.Path)
}

// ============================================================
// Helpers
// ============================================================

func (h *WizardHandler) session(c fiber.Ctx) (string, *store.Store, error) {
	id := c.Params("id")
	st, err := h.sessions.Get(id)
	if err != nil {
		return "", nil, fiber.NewError(http.StatusNotFound, "session not found")
	}
	return id, st, nil
}

func (h *WizardHandler) payload(id string, st *store.Store, cue *Cue) sessionPayload {
	sel, step := st.View()
	info, _ := h.catalog.StepAt(step)
	return sessionPayload{
		ID:        id,
		Step:      step,
		StepInfo:  info,
		Selection: sel,
		Cue:       cue,
	}
}

// normalizeIntent приводит категорию к внутреннему ключу и обрезает текст статуса до лимита.
func normalizeIntent(intent models.Intent) (models.Intent, error) {
	if intent.Category != "" {
		category, err := models.ParseCategory(string(intent.Category))
		if err != nil {
			return intent, err
		}
		intent.Category = category
	}

	switch intent.Action {
	case models.ActionSelect, models.ActionAdd, models.ActionRemove, models.ActionToggle:
		if intent.Category == "" {
			return intent, fmt.Errorf("category required for %q", intent.Action)
		}
		if intent.Category != models.CategoryMessage && intent.Name == "" {
			return intent, fmt.Errorf("name required for %q", intent.Action)
		}
	}

	intent.Text = truncateRunes(intent.Text, models.MaxMessageLength)
	return intent, nil
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
