package cli

import (
	"path/filepath"
	"strings"

	"github.com/kyson-dev/profile-upgrader/internal/migrate"
	"github.com/kyson-dev/profile-upgrader/internal/profile"
	"github.com/kyson-dev/profile-upgrader/internal/store"
	"github.com/spf13/cobra"
)

// storeFlags 规则集和订阅 store 的路径
type storeFlags struct {
	ruleSets      string
	subscriptions string
}

func (f *storeFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.ruleSets, "rulesets", "", "Path to the GUI's rulesets.yaml")
	cmd.Flags().StringVar(&f.subscriptions, "subscribes", "", "Path to the GUI's subscribes.yaml")
}

// context builds the lookup services; an unset path means an empty store.
func (f *storeFlags) context() (*migrate.Context, error) {
	ctx := &migrate.Context{}
	if f.ruleSets != "" {
		rs, err := store.LoadRuleSets(f.ruleSets)
		if err != nil {
			return nil, err
		}
		ctx.RuleSets = rs
	}
	if f.subscriptions != "" {
		subs, err := store.LoadSubscriptions(f.subscriptions)
		if err != nil {
			return nil, err
		}
		ctx.Subscriptions = subs
	}
	return ctx, nil
}

// loadAndMigrate reads a stored profile and brings it to the current schema.
func loadAndMigrate(path, from string, stores *storeFlags) (*profile.Profile, migrate.Document, error) {
	data, err := store.ReadProfile(path)
	if err != nil {
		return nil, migrate.Document{}, err
	}

	doc, err := migrate.DecodeDocument(data, from)
	if err != nil {
		return nil, migrate.Document{}, err
	}

	ctx, err := stores.context()
	if err != nil {
		return nil, doc, err
	}

	out, err := migrate.Migrate(doc, ctx)
	if err != nil {
		return nil, doc, err
	}
	return out, doc, nil
}

// resolveFormat picks the output format: the flag wins, then the target
// file's extension, then YAML.
func resolveFormat(flag, path string) string {
	if flag != "" {
		return strings.ToLower(flag)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return profile.FormatJSON
	}
	return profile.FormatYAML
}
