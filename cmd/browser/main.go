package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/matst80/slask-catalog/pkg/catalog"
	"github.com/matst80/slask-catalog/pkg/index"
	"github.com/matst80/slask-catalog/pkg/logger"
	"github.com/matst80/slask-catalog/pkg/render"
	"github.com/matst80/slask-catalog/pkg/storage"
	"github.com/matst80/slask-catalog/pkg/types"
)

type options struct {
	query      string
	categories []int
	user       string
	clicks     []string
	dataDir    string
	exportDir  string
	gzipped    bool
}

func parseFlags(args []string) (*options, error) {
	opts := &options{}
	fs := pflag.NewFlagSet("browser", pflag.ContinueOnError)
	fs.StringVarP(&opts.query, "query", "q", "", "filter products by name")
	fs.IntSliceVarP(&opts.categories, "category", "c", nil, "toggle category id, may be repeated")
	fs.StringVarP(&opts.user, "user", "u", "", "only products owned by this user")
	fs.StringArrayVar(&opts.clicks, "click", nil, "click a column header (id, name, categoryTitle, userName), may be repeated")
	fs.StringVarP(&opts.dataDir, "data", "d", "", "catalog folder, the bundled demo catalog when empty")
	fs.StringVar(&opts.exportDir, "export", "", "write the loaded catalog to this folder instead of browsing")
	fs.BoolVar(&opts.gzipped, "gzip", false, "gzip the exported files")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

// state replays the options the way a user would click through the UI.
func (o *options) state() (types.FilterState, error) {
	state := types.NewFilterState().WithQuery(o.query)
	for _, id := range o.categories {
		state = state.ToggleCategory(types.CategoryId(id))
	}
	if o.user != "" {
		state = state.WithUser(o.user)
	}
	for _, click := range o.clicks {
		field, err := types.ParseSortField(click)
		if err != nil {
			return state, err
		}
		state = state.ToggleSort(field)
	}
	return state, nil
}

func run(args []string, out io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	state, err := opts.state()
	if err != nil {
		return err
	}
	ds, err := storage.LoadDataset(opts.dataDir)
	if err != nil {
		return err
	}
	views, err := catalog.Join(ds)
	if err != nil {
		return err
	}
	if opts.exportDir != "" {
		if err := storage.NewDiskStorage(opts.exportDir).SaveDataset(ds, opts.gzipped); err != nil {
			return err
		}
		_, err := fmt.Fprintf(out, "exported %d products to %s\n", len(ds.Products), opts.exportDir)
		return err
	}
	result := index.Apply(views, state)
	if err := render.Summary(out, state, len(result)); err != nil {
		return err
	}
	return render.Table(out, result, state.Sort())
}

func main() {
	log, err := logger.New(os.Getenv("LOG_LEVEL"), "console")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal("browse failed", zap.Error(err))
	}
}
