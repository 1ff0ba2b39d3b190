package services

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"

	"autocorrect/internal/models"
	"autocorrect/internal/repositories"
)

const customModePrefix = "custom_"

// ModeService manages the persisted mode registry. System modes come from the
// catalog and are never mutated; custom modes are created, edited and deleted
// by the user.
type ModeService interface {
	Load() *models.ModeRegistry
	AllModes() map[string]models.Mode
	OrderedModes() []models.Mode
	Create(title, icon, prompt string) (string, error)
	UpdatePrompt(id, prompt string) error
	Delete(id string) error
	Reorder(order []string) error
}

type modeService struct {
	repo    repositories.ConfigRepository
	catalog ModelCatalog
	logger  *slog.Logger

	mu sync.Mutex
}

func NewModeService(repo repositories.ConfigRepository, catalog ModelCatalog, logger *slog.Logger) ModeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &modeService{repo: repo, catalog: catalog, logger: logger}
}

// Load returns the registry, seeding it from the catalog on first use and
// merging in system modes added since the file was written. Upgrades are
// persisted; a failed write is logged and the upgraded registry still returned.
func (s *modeService) Load() *models.ModeRegistry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *modeService) loadLocked() *models.ModeRegistry {
	reg, changed := s.upgrade(s.repo.Load().Modes)
	if changed {
		if err := s.repo.Save(models.ConfigPatch{Modes: reg}); err != nil {
			s.logger.Warn("persist mode registry", "error", err)
		}
	}
	return reg
}

func (s *modeService) upgrade(stored *models.ModeRegistry) (*models.ModeRegistry, bool) {
	seed := s.catalog.SystemModes()
	if stored == nil {
		reg := &models.ModeRegistry{
			System: make(map[string]models.Mode, len(seed)),
			Custom: map[string]models.Mode{},
			Order:  make([]string, 0, len(seed)),
		}
		for _, mode := range seed {
			reg.System[mode.ID] = storedMode(mode)
			reg.Order = append(reg.Order, mode.ID)
		}
		return reg, true
	}

	reg := stored.Clone()
	changed := false
	if reg.System == nil {
		reg.System = make(map[string]models.Mode, len(seed))
		changed = true
	}
	for _, mode := range seed {
		if _, ok := reg.System[mode.ID]; !ok {
			reg.System[mode.ID] = storedMode(mode)
			changed = true
		}
	}
	if reg.Custom == nil {
		reg.Custom = map[string]models.Mode{}
		changed = true
	}
	if reg.Order == nil {
		reg.Order = s.defaultOrder(reg)
		changed = true
	}
	if seq := highestCustomSequence(reg.Custom); seq > reg.Sequence {
		reg.Sequence = seq
		changed = true
	}
	return reg, changed
}

// defaultOrder lists catalog modes first, then any other stored ids.
func (s *modeService) defaultOrder(reg *models.ModeRegistry) []string {
	order := make([]string, 0, len(reg.System)+len(reg.Custom))
	seen := make(map[string]bool, cap(order))
	for _, mode := range s.catalog.SystemModes() {
		if _, ok := reg.System[mode.ID]; ok {
			order = append(order, mode.ID)
			seen[mode.ID] = true
		}
	}
	var rest []string
	for id := range reg.All() {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return lessModeID(rest[i], rest[j]) })
	return append(order, rest...)
}

func (s *modeService) AllModes() map[string]models.Mode {
	all := s.Load().All()
	for id, mode := range all {
		mode.ID = id
		all[id] = mode
	}
	return all
}

// OrderedModes follows the stored order, skipping ids that no longer exist.
func (s *modeService) OrderedModes() []models.Mode {
	reg := s.Load()
	all := reg.All()
	out := make([]models.Mode, 0, len(reg.Order))
	for _, id := range reg.Order {
		mode, ok := all[id]
		if !ok {
			continue
		}
		mode.ID = id
		out = append(out, mode)
	}
	return out
}

func (s *modeService) Create(title, icon, prompt string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: prompt is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reg := s.loadLocked()
	next := reg.Sequence + 1
	id := customModePrefix + strconv.Itoa(next)
	for taken(reg, id) {
		next++
		id = customModePrefix + strconv.Itoa(next)
	}

	reg.Custom[id] = models.Mode{
		Title:  title,
		Icon:   strings.TrimSpace(icon),
		Prompt: prompt,
		Order:  len(reg.Order) + 1,
		Page:   len(reg.Order)/3 + 1,
	}
	reg.Order = append(reg.Order, id)
	reg.Sequence = next

	if err := s.repo.Save(models.ConfigPatch{Modes: reg}); err != nil {
		return "", fmt.Errorf("save custom mode: %w", err)
	}
	return id, nil
}

func (s *modeService) UpdatePrompt(id, prompt string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg := s.loadLocked()
	mode, ok := reg.Custom[id]
	if !ok {
		return fmt.Errorf("%w: mode %s not found or not editable", ErrNotFound, id)
	}
	mode.Prompt = prompt
	reg.Custom[id] = mode
	if err := s.repo.Save(models.ConfigPatch{Modes: reg}); err != nil {
		return fmt.Errorf("update custom mode: %w", err)
	}
	return nil
}

func (s *modeService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg := s.loadLocked()
	if _, ok := reg.Custom[id]; !ok {
		return fmt.Errorf("%w: mode %s not found or not deletable", ErrNotFound, id)
	}
	delete(reg.Custom, id)
	order := reg.Order[:0]
	for _, existing := range reg.Order {
		if existing != id {
			order = append(order, existing)
		}
	}
	reg.Order = order
	if err := s.repo.Save(models.ConfigPatch{Modes: reg}); err != nil {
		return fmt.Errorf("delete custom mode: %w", err)
	}
	return nil
}

// Reorder replaces the stored order. Every id must exist in the loaded
// registry and appear once.
func (s *modeService) Reorder(order []string) error {
	if len(order) == 0 {
		return fmt.Errorf("%w: new order is empty", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reg := s.loadLocked()
	all := reg.All()
	seen := make(map[string]bool, len(order))
	var unknown, duplicates []string
	for _, id := range order {
		if _, ok := all[id]; !ok {
			unknown = append(unknown, id)
			continue
		}
		if seen[id] {
			duplicates = append(duplicates, id)
		}
		seen[id] = true
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%w: unknown modes: %s", ErrValidation, strings.Join(unknown, ", "))
	}
	if len(duplicates) > 0 {
		return fmt.Errorf("%w: duplicate modes: %s", ErrValidation, strings.Join(duplicates, ", "))
	}

	reg.Order = append([]string{}, order...)
	if err := s.repo.Save(models.ConfigPatch{Modes: reg}); err != nil {
		return fmt.Errorf("reorder modes: %w", err)
	}
	return nil
}

func taken(reg *models.ModeRegistry, id string) bool {
	_, custom := reg.Custom[id]
	_, system := reg.System[id]
	return custom || system
}

func storedMode(mode models.Mode) models.Mode {
	mode.ID = ""
	mode.System = true
	return mode
}

func customSequence(id string) (int, bool) {
	if !strings.HasPrefix(id, customModePrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(id, customModePrefix))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func highestCustomSequence(custom map[string]models.Mode) int {
	highest := 0
	for id := range custom {
		if n, ok := customSequence(id); ok && n > highest {
			highest = n
		}
	}
	return highest
}

// lessModeID sorts custom_<n> ids numerically after every other id.
func lessModeID(a, b string) bool {
	na, aCustom := customSequence(a)
	nb, bCustom := customSequence(b)
	switch {
	case aCustom && bCustom:
		return na < nb
	case aCustom != bCustom:
		return bCustom
	default:
		return a < b
	}
}
