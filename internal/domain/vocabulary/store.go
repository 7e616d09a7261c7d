// Package vocabulary owns the canonical term lists the normalization pipeline
// matches against: the ADR (adverse drug reaction) list, the generic medicine
// list, and the brand→generic mapping.
//
// All three resources are flat line-oriented text files, loaded lazily on
// first use and memoized for the process lifetime.  Lists are immutable after
// load; callers must treat returned slices and maps as read-only.
package vocabulary

import (
	"bufio"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/gamotph/adr-intelligence/internal/config"
	"github.com/gamotph/adr-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/gamotph/adr-intelligence/pkg/errors"
)

// Store loads and caches the canonical vocabularies.
//
// The reaction list is required: without it no reaction can ever normalize,
// so a missing file is surfaced as a fatal CodeVocabularyMissing error.  The
// generic list and the brand mapping are optional; when missing they degrade
// to empty containers and every dependent match deterministically fails
// (absence, never an error).
type Store struct {
	cfg    config.VocabularyConfig
	logger logging.Logger

	reactionsOnce sync.Once
	reactions     []string
	reactionsErr  error

	genericsOnce sync.Once
	generics     []string

	brandOnce sync.Once
	brandMap  map[string]string
	brandKeys []string
}

// NewStore constructs a Store that reads from the configured file paths.
func NewStore(cfg config.VocabularyConfig, log logging.Logger) *Store {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Store{cfg: cfg, logger: log.Named("vocabulary")}
}

// NewStoreFromLists constructs a pre-loaded Store for tests and embedded
// deployments.  No file I/O ever happens on the returned Store.
func NewStoreFromLists(reactions, generics []string, brandMap map[string]string) *Store {
	s := &Store{logger: logging.NewNopLogger()}
	s.reactions = reactions
	if brandMap == nil {
		brandMap = map[string]string{}
	}
	s.generics = generics
	s.brandMap = brandMap
	s.brandKeys = sortedKeys(brandMap)
	// Consume the memoization guards so the file loaders never run.
	s.reactionsOnce.Do(func() {})
	s.genericsOnce.Do(func() {})
	s.brandOnce.Do(func() {})
	return s
}

// EnsureLoaded eagerly loads every vocabulary resource and returns the
// reaction-list error, if any.  Call it once at startup so a missing required
// resource aborts initialization instead of failing the first request.
func (s *Store) EnsureLoaded() error {
	_, err := s.Reactions()
	s.Generics()
	s.BrandMapping()
	return err
}

// Reactions returns the canonical ADR term list in file order.
func (s *Store) Reactions() ([]string, error) {
	s.reactionsOnce.Do(func() {
		terms, err := readTermList(s.cfg.ReactionListPath)
		if err != nil {
			s.reactionsErr = errors.Wrap(err, errors.CodeVocabularyMissing,
				"canonical ADR list could not be loaded").WithDetail("path=" + s.cfg.ReactionListPath)
			return
		}
		if len(terms) == 0 {
			s.reactionsErr = errors.New(errors.CodeVocabularyParse,
				"canonical ADR list is empty").WithDetail("path=" + s.cfg.ReactionListPath)
			return
		}
		s.reactions = terms
		s.logger.Info("reaction vocabulary loaded", logging.Int("terms", len(terms)))
	})
	return s.reactions, s.reactionsErr
}

// Generics returns the canonical generic medicine names.  A missing or
// unreadable file yields an empty list.
func (s *Store) Generics() []string {
	s.genericsOnce.Do(func() {
		terms, err := readTermList(s.cfg.GenericListPath)
		if err != nil {
			s.logger.Warn("generic list unavailable, medicine matching degraded",
				logging.String("path", s.cfg.GenericListPath), logging.Err(err))
			s.generics = []string{}
			return
		}
		s.generics = terms
		s.logger.Info("generic vocabulary loaded", logging.Int("terms", len(terms)))
	})
	return s.generics
}

// BrandMapping returns the lowercase-brand → generic mapping.  A missing or
// unreadable file yields an empty map.
func (s *Store) BrandMapping() map[string]string {
	s.loadBrands()
	return s.brandMap
}

// BrandKeys returns the brand names (mapping keys) in ascending order, the
// candidate list for brand fuzzy matching.
func (s *Store) BrandKeys() []string {
	s.loadBrands()
	return s.brandKeys
}

func (s *Store) loadBrands() {
	s.brandOnce.Do(func() {
		m, err := readBrandMapping(s.cfg.BrandListPath)
		if err != nil {
			s.logger.Warn("brand list unavailable, brand resolution degraded",
				logging.String("path", s.cfg.BrandListPath), logging.Err(err))
			m = map[string]string{}
		}
		s.brandMap = m
		s.brandKeys = sortedKeys(m)
		s.logger.Info("brand mapping loaded", logging.Int("brands", len(m)))
	})
}

// readTermList reads a one-term-per-line file, trimming whitespace and
// skipping blank lines.
func readTermList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var terms []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		term := strings.TrimSpace(scanner.Text())
		if term != "" {
			terms = append(terms, term)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return terms, nil
}

// readBrandMapping parses lines of the form "Brand = Generic".
//
//   - lines starting with '#' or lacking '=' are skipped
//   - '=' splits on first occurrence only
//   - targets marked "not a medicine" or "skip" (case-insensitive) are excluded
//   - brand keys are lowercased; duplicate keys keep the last value
func readBrandMapping(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mapping := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		brand, generic, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		brand = strings.TrimSpace(brand)
		generic = strings.TrimSpace(generic)
		if brand == "" || generic == "" {
			continue
		}
		lower := strings.ToLower(generic)
		if strings.Contains(lower, "not a medicine") || strings.Contains(lower, "skip") {
			continue
		}
		mapping[strings.ToLower(brand)] = generic
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return mapping, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Stable candidate order keeps fuzzy tie-breaks reproducible across runs.
	sort.Strings(keys)
	return keys
}
