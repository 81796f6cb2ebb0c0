package catalog

import (
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ConflictPolicy decides what happens when the same key is added twice with
// different default values. The extraction core emits deterministic entries
// per node; reconciling occurrences across a project is this layer's job.
type ConflictPolicy int

const (
	// ConflictFirst keeps the first-seen value and warns on divergence
	ConflictFirst ConflictPolicy = iota
	// ConflictLast lets the last-seen value win
	ConflictLast
	// ConflictError fails the run on divergent values
	ConflictError
)

// ParseConflictPolicy parses a policy name from configuration
func ParseConflictPolicy(name string) (ConflictPolicy, error) {
	switch name {
	case "", "first":
		return ConflictFirst, nil
	case "last":
		return ConflictLast, nil
	case "error":
		return ConflictError, nil
	default:
		return ConflictFirst, errors.Errorf("unknown conflict policy %q", name)
	}
}

// String returns the configuration name of the policy
func (p ConflictPolicy) String() string {
	switch p {
	case ConflictLast:
		return "last"
	case ConflictError:
		return "error"
	default:
		return "first"
	}
}

// Catalog accumulates extracted entries for one (locale, namespace) pair
type Catalog struct {
	Locale    string
	Namespace string

	entries map[string]string
	policy  ConflictPolicy
	logger  *zap.Logger
}

// New creates a new Catalog
func New(locale, namespace string, policy ConflictPolicy, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{
		Locale:    locale,
		Namespace: namespace,
		entries:   make(map[string]string),
		policy:    policy,
		logger:    logger,
	}
}

// Add records a (key, defaultValue) pair, applying the conflict policy when
// the key was already present with a different value
func (c *Catalog) Add(key, value string) error {
	existing, ok := c.entries[key]
	if !ok {
		c.entries[key] = value
		return nil
	}
	if existing == value {
		return nil
	}
	switch c.policy {
	case ConflictLast:
		c.entries[key] = value
	case ConflictError:
		return errors.Errorf("key %q has divergent default values %q and %q", key, existing, value)
	default:
		c.logger.Warn("divergent default values for key, keeping first",
			zap.String("locale", c.Locale),
			zap.String("namespace", c.Namespace),
			zap.String("key", key),
			zap.String("kept", existing),
			zap.String("ignored", value))
	}
	return nil
}

// Len returns the number of keys in the catalog
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Get returns the value for a key and whether it is present
func (c *Catalog) Get(key string) (string, bool) {
	value, ok := c.entries[key]
	return value, ok
}

// Keys returns the catalog keys in sorted order
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// MergeExisting folds a previously persisted locale file into the catalog:
// keys already translated keep their persisted value, and with keepRemoved
// set, keys no longer extracted from source survive too. keySeparator must
// match the separator the file was written with; empty means flat keys.
func (c *Catalog) MergeExisting(data []byte, keySeparator string, keepRemoved bool) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrapf(err, "parse existing catalog for %s/%s", c.Locale, c.Namespace)
	}
	existing := make(map[string]string)
	flatten(raw, "", keySeparator, existing)
	for key, value := range existing {
		if _, ok := c.entries[key]; ok {
			if value != "" {
				c.entries[key] = value
			}
		} else if keepRemoved {
			c.entries[key] = value
		}
	}
	return nil
}

// Bytes renders the catalog as indented JSON with sorted keys. A non-empty
// keySeparator produces nested objects; empty produces a flat object.
func (c *Catalog) Bytes(keySeparator string) ([]byte, error) {
	var doc interface{}
	if keySeparator == "" {
		doc = c.entries
	} else {
		doc = nest(c.entries, keySeparator)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrapf(err, "marshal catalog for %s/%s", c.Locale, c.Namespace)
	}
	return append(data, '\n'), nil
}

// nest builds a nested object tree from flat separator-joined keys. A leaf
// value that collides with an existing subtree keeps the subtree; the flat
// key is stored as-is instead so no entry is lost.
func nest(flat map[string]string, separator string) map[string]interface{} {
	root := make(map[string]interface{})
	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		parts := strings.Split(key, separator)
		node := root
		ok := true
		for _, part := range parts[:len(parts)-1] {
			child, exists := node[part]
			if !exists {
				next := make(map[string]interface{})
				node[part] = next
				node = next
				continue
			}
			next, isMap := child.(map[string]interface{})
			if !isMap {
				ok = false
				break
			}
			node = next
		}
		leaf := parts[len(parts)-1]
		if _, exists := node[leaf].(map[string]interface{}); exists {
			ok = false
		}
		if !ok {
			root[key] = flat[key]
			continue
		}
		node[leaf] = flat[key]
	}
	return root
}

// flatten inverts nest, joining nested object keys with the separator
func flatten(raw map[string]interface{}, prefix, separator string, out map[string]string) {
	for key, value := range raw {
		full := key
		if prefix != "" {
			full = prefix + separator + key
		}
		switch v := value.(type) {
		case string:
			out[full] = v
		case map[string]interface{}:
			if separator == "" {
				continue
			}
			flatten(v, full, separator, out)
		}
	}
}
