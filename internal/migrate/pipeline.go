package migrate

import (
	"errors"
	"fmt"

	"github.com/kyson-dev/profile-upgrader/internal/legacy"
	"github.com/kyson-dev/profile-upgrader/internal/logger"
	"github.com/kyson-dev/profile-upgrader/internal/profile"
)

// Document is a profile in flight. Exactly one payload matches Version's
// schema generation; a step replaces it with the next one.
type Document struct {
	Version string
	Legacy  *legacy.Profile
	V190    *profile.ProfileV190
	Current *profile.Profile
}

// Step 迁移步骤接口
// 每个步骤把文档从上一个 schema 版本转换到 Target 版本
type Step interface {
	// Name 返回步骤名称，用于日志和错误
	Name() string
	// Target 是该步骤产出的 schema 版本
	Target() string
	// Apply 转换文档；只读 ctx
	Apply(doc *Document, ctx *Context) error
}

// Pipeline applies the steps a document still needs, oldest first.
type Pipeline struct {
	steps []Step
	ctx   *Context
}

// NewPipeline returns a pipeline with the default step chain.
func NewPipeline(ctx *Context) *Pipeline {
	if ctx == nil {
		ctx = &Context{}
	}
	return &Pipeline{
		steps: DefaultSteps(),
		ctx:   ctx,
	}
}

// DefaultSteps is the full version chain in order.
func DefaultSteps() []Step {
	return []Step{
		&legacyStep{},
		&dnsServerStep{},
	}
}

// Steps returns the steps Run would apply to a document at version.
func (p *Pipeline) Steps(version string) ([]Step, error) {
	current, err := ParseSchemaVersion(version)
	if err != nil {
		return nil, err
	}

	var pending []Step
	for _, s := range p.steps {
		needed, err := current.Needs(s)
		if err != nil {
			return nil, err
		}
		if needed {
			pending = append(pending, s)
		}
	}
	return pending, nil
}

// Run migrates doc to the current schema. The input payloads are never
// modified; on error nothing of the partial result is returned.
func (p *Pipeline) Run(doc Document) (*profile.Profile, error) {
	pending, err := p.Steps(doc.Version)
	if err != nil {
		return nil, err
	}

	for _, s := range pending {
		logger.Debug("Applying migration step", "name", s.Name(), "target", s.Target())
		if err := s.Apply(&doc, p.ctx); err != nil {
			var migrationErr *MigrationError
			if errors.As(err, &migrationErr) {
				return nil, err
			}
			return nil, &MigrationError{Step: s.Target(), Err: err}
		}
		doc.Version = s.Target()
	}

	if doc.Current == nil {
		return nil, fmt.Errorf("%w: %s document has no current payload", ErrUnsupportedVersion, doc.Version)
	}
	return doc.Current, nil
}

// Migrate runs the default pipeline.
func Migrate(doc Document, ctx *Context) (*profile.Profile, error) {
	return NewPipeline(ctx).Run(doc)
}

type legacyStep struct{}

func (s *legacyStep) Name() string   { return "legacy-profile" }
func (s *legacyStep) Target() string { return profile.VersionV190 }

func (s *legacyStep) Apply(doc *Document, ctx *Context) error {
	if doc.Legacy == nil {
		return fmt.Errorf("%w: expected a 1.8.x payload", ErrUnsupportedVersion)
	}
	next, err := UpgradeLegacy(doc.Legacy, ctx)
	if err != nil {
		return err
	}
	doc.Legacy = nil
	doc.V190 = next
	return nil
}

type dnsServerStep struct{}

func (s *dnsServerStep) Name() string   { return "typed-dns-servers" }
func (s *dnsServerStep) Target() string { return profile.VersionCurrent }

func (s *dnsServerStep) Apply(doc *Document, _ *Context) error {
	if doc.V190 == nil {
		return fmt.Errorf("%w: expected a 1.9.0 payload", ErrUnsupportedVersion)
	}
	next, err := UpgradeV190(doc.V190)
	if err != nil {
		return err
	}
	doc.V190 = nil
	doc.Current = next
	return nil
}
