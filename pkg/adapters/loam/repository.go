package loam

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/aretw0/loam"
	loamfs "github.com/aretw0/loam/pkg/adapters/fs"
	"github.com/aretw0/loam/pkg/core"
	"github.com/goganux/texas-career-path-explorer/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Repository adapts a Loam document store to ports.PathwayRepository.
// Each node is one Markdown document with YAML frontmatter; the file name is
// free, the numeric id lives in the frontmatter.
type Repository struct {
	repo     core.Repository
	typed    *loam.TypedRepository[NodeMetadata]
	dir      string
	readOnly bool

	mu sync.Mutex // serializes id assignment in Upsert
}

// Option configures the Repository.
type Option func(*Repository)

// WithReadOnly rejects Upsert with domain.ErrReadOnly.
func WithReadOnly(readOnly bool) Option {
	return func(r *Repository) {
		r.readOnly = readOnly
	}
}

// New wraps an initialized Loam repository.
// For filesystem vaults, Markdown files Loam fails to index are reported
// instead of skipped.
func New(repo core.Repository, opts ...Option) *Repository {
	r := &Repository{
		repo:  repo,
		typed: loam.NewTypedRepository[NodeMetadata](repo),
	}
	if vault, ok := repo.(*loamfs.Repository); ok {
		r.dir = vault.Path
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open initializes Loam at dir. Numbers are decoded strictly and versioning is off.
func Open(dir string, opts ...Option) (*Repository, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	r := &Repository{}
	for _, opt := range opts {
		opt(r)
	}

	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithVersioning(false),
		loam.WithReadOnly(r.readOnly),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(repo, opts...), nil
}

type entry struct {
	docID string
	node  domain.PathwayNode
}

// scan decodes every document and indexes it by node id.
// Documents that fail to decode, lack an id, or repeat an id already seen are
// skipped and returned joined in problems as *domain.DocumentError values.
// err is only set when the store itself cannot be listed.
func (r *Repository) scan(ctx context.Context) (entries []entry, problems error, err error) {
	ids, err := r.documentIDs(ctx)
	if err != nil {
		return nil, nil, err
	}

	var errs []error
	seen := make(map[int]string, len(ids))
	entries = make([]entry, 0, len(ids))
	for _, id := range ids {
		doc, err := r.typed.Get(ctx, id)
		if err != nil {
			errs = append(errs, &domain.DocumentError{Document: id, Err: err})
			continue
		}
		node, err := toNode(doc.Data, doc.Content)
		if err != nil {
			errs = append(errs, &domain.DocumentError{Document: id, Err: err})
			continue
		}
		if node.ID <= 0 {
			errs = append(errs, &domain.DocumentError{Document: id, Err: fmt.Errorf("%w: missing id", domain.ErrInvalidNode)})
			continue
		}
		if existing, ok := seen[node.ID]; ok {
			errs = append(errs, &domain.DocumentError{
				Document: id,
				Err:      fmt.Errorf("collision detected: id %d is defined in both '%s' and '%s'", node.ID, existing, id),
			})
			continue
		}
		seen[node.ID] = id
		entries = append(entries, entry{docID: id, node: node})
	}
	return entries, errors.Join(errs...), nil
}

// documentIDs lists the documents Loam indexed plus, for filesystem vaults,
// Markdown files it could not parse. IDs are sorted so collisions are
// reported deterministically.
func (r *Repository) documentIDs(ctx context.Context) ([]string, error) {
	docs, err := r.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}

	if r.dir != "" {
		err := filepath.WalkDir(r.dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			name := d.Name()
			if d.IsDir() {
				if path != r.dir && strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasPrefix(name, ".") || filepath.Ext(name) != ".md" {
				return nil
			}
			rel, err := filepath.Rel(r.dir, path)
			if err != nil {
				return err
			}
			ids = append(ids, strings.TrimSuffix(filepath.ToSlash(rel), ".md"))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", r.dir, err)
		}
	}

	slices.Sort(ids)
	return slices.Compact(ids), nil
}

// Get returns a node by id.
func (r *Repository) Get(ctx context.Context, id int) (domain.PathwayNode, error) {
	entries, problems, err := r.scan(ctx)
	if err != nil {
		return domain.PathwayNode{}, err
	}
	if problems != nil {
		return domain.PathwayNode{}, problems
	}
	for _, e := range entries {
		if e.node.ID == id {
			return e.node, nil
		}
	}
	return domain.PathwayNode{}, fmt.Errorf("node %d: %w", id, domain.ErrNodeNotFound)
}

// List returns the interest's nodes grouped by column.
// Within a column nodes are ordered by id, since file order carries no meaning.
func (r *Repository) List(ctx context.Context, interestID int) (domain.NodeSet, error) {
	entries, problems, err := r.scan(ctx)
	if err != nil {
		return domain.NodeSet{}, err
	}
	if problems != nil {
		return domain.NodeSet{}, problems
	}
	nodes := make([]domain.PathwayNode, 0)
	for _, e := range entries {
		if e.node.InterestID == interestID {
			nodes = append(nodes, e.node)
		}
	}
	sortByID(nodes)
	return domain.Partition(interestID, nodes), nil
}

// All returns every decoded node ordered by id, including nodes of unknown type.
// Documents that could not be decoded do not abort the listing: the decoded
// nodes are returned together with the joined *domain.DocumentError values.
func (r *Repository) All(ctx context.Context) ([]domain.PathwayNode, error) {
	entries, problems, err := r.scan(ctx)
	if err != nil {
		return nil, err
	}
	nodes := make([]domain.PathwayNode, len(entries))
	for i, e := range entries {
		nodes[i] = e.node
	}
	sortByID(nodes)
	return nodes, problems
}

// Upsert writes the node's document, assigning the next free id when ID is 0.
// An existing document for the id is overwritten in place.
func (r *Repository) Upsert(ctx context.Context, node domain.PathwayNode) (domain.PathwayNode, error) {
	if r.readOnly {
		return domain.PathwayNode{}, domain.ErrReadOnly
	}
	if err := node.Validate(); err != nil {
		return domain.PathwayNode{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entries, problems, err := r.scan(ctx)
	if err != nil {
		return domain.PathwayNode{}, err
	}
	if problems != nil {
		return domain.PathwayNode{}, problems
	}

	docID := ""
	maxID := 0
	for _, e := range entries {
		if e.node.ID > maxID {
			maxID = e.node.ID
		}
		if node.ID != 0 && e.node.ID == node.ID {
			docID = e.docID
		}
	}
	if node.ID == 0 {
		node.ID = maxID + 1
	}
	if docID == "" {
		docID = DocumentID(node)
	}

	meta, err := metadata(node)
	if err != nil {
		return domain.PathwayNode{}, err
	}
	doc := core.Document{ID: docID, Content: node.Description, Metadata: meta}
	if err := r.repo.Save(ctx, doc); err != nil {
		return domain.PathwayNode{}, fmt.Errorf("loam save failed for node %d: %w", node.ID, err)
	}
	return node.Clone(), nil
}

// DocumentID is the path new nodes are written to: <interest>/<type>-<id>.
func DocumentID(node domain.PathwayNode) string {
	return fmt.Sprintf("interest-%d/%s-%d", node.InterestID, node.PathwayType, node.ID)
}

func toNode(meta NodeMetadata, content string) (domain.PathwayNode, error) {
	node := domain.PathwayNode{
		ID:          meta.ID,
		InterestID:  meta.InterestID,
		PathwayType: domain.PathwayType(strings.ToLower(strings.TrimSpace(meta.PathwayType))),
		Title:       meta.Title,
		Description: strings.TrimSpace(content),
		Status:      domain.Status(strings.ToLower(strings.TrimSpace(meta.Status))),
	}
	if len(meta.AdditionalInfo) == 0 {
		return node, nil
	}

	var info domain.AdditionalInfo
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &info,
	})
	if err != nil {
		return node, err
	}
	if err := dec.Decode(meta.AdditionalInfo); err != nil {
		return node, fmt.Errorf("invalid additional_info: %w", err)
	}
	node.AdditionalInfo = &info
	return node, nil
}

// metadata builds the frontmatter Loam serializes ahead of the description.
// Loam caches this map as the document's index entry, so it must carry every field.
func metadata(node domain.PathwayNode) (core.Metadata, error) {
	meta := core.Metadata{
		"id":          node.ID,
		"interest_id": node.InterestID,
		"type":        string(node.PathwayType),
		"title":       node.Title,
		"status":      string(node.Status),
	}
	if node.AdditionalInfo == nil {
		return meta, nil
	}

	// Round-trip through YAML so the map uses the same keys hand-written files do.
	raw, err := yaml.Marshal(node.AdditionalInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal additional_info: %w", err)
	}
	var info map[string]any
	if err := yaml.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("failed to marshal additional_info: %w", err)
	}
	if len(info) > 0 {
		meta["additional_info"] = info
	}
	return meta, nil
}

func sortByID(nodes []domain.PathwayNode) {
	slices.SortFunc(nodes, func(a, b domain.PathwayNode) int {
		return cmp.Compare(a.ID, b.ID)
	})
}
