// Command gohighlight replays a highlight index onto an HTML page, or prints
// the index of a page that already carries markers.
//
// Usage:
//
//	gohighlight -config highlight.yaml -index page.json page.html
//	gohighlight -config highlight.yaml -snapshot highlighted.html
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/heathj/gohighlight/dom"
	"github.com/heathj/gohighlight/highlighter"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML highlighter config")
	indexPath := flag.String("index", "", "path to a JSON highlight index to replay")
	snapshot := flag.Bool("snapshot", false, "print the highlight index of the page instead of HTML")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		log.WithError(err).Fatal("invalid log level")
	}
	log.SetLevel(level)

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: gohighlight [flags] page.html")
		os.Exit(2)
	}
	if err := run(os.Stdout, log, *configPath, *indexPath, *snapshot, flag.Arg(0)); err != nil {
		log.WithError(err).Fatal("gohighlight failed")
	}
}

func run(out io.Writer, log *logrus.Logger, configPath, indexPath string, snapshot bool, pagePath string) error {
	cfg := &highlighter.Config{}
	if configPath != "" {
		loaded, err := highlighter.LoadConfigFile(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	page, err := os.ReadFile(pagePath)
	if err != nil {
		return errors.Wrap(err, "read page")
	}
	root, err := dom.ParseFragment(string(page))
	if err != nil {
		return err
	}
	h, err := highlighter.New(root, *cfg, highlighter.WithLogger(log))
	if err != nil {
		return err
	}

	if snapshot {
		data, err := h.GetHighlightIndex().Encode()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if indexPath != "" {
		data, err := os.ReadFile(indexPath)
		if err != nil {
			return errors.Wrap(err, "read index")
		}
		index, err := highlighter.ParseIndex(data)
		if err != nil {
			return err
		}
		h.HighlightFromIndex(index)
	}
	fmt.Fprintln(out, dom.InnerHTML(root))
	return nil
}
