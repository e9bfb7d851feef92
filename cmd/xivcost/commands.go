package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/osse101/XIVMarket_Go/internal/bootstrap"
	"github.com/osse101/XIVMarket_Go/internal/config"
	"github.com/osse101/XIVMarket_Go/internal/crafting"
	"github.com/osse101/XIVMarket_Go/internal/domain"
	"github.com/osse101/XIVMarket_Go/internal/logger"
	"github.com/osse101/XIVMarket_Go/internal/price"
	"github.com/osse101/XIVMarket_Go/internal/search"
	"github.com/osse101/XIVMarket_Go/internal/utils"
)

// Flag names
const (
	flagWorld      = "world"
	flagDatacenter = "datacenter"
	flagLang       = "lang"
	flagJSON       = "json"
	flagOut        = "out"
	flagLogLevel   = "log-level"
	flagCategory   = "category"
	flagDepth      = "depth"
	flagNoWait     = "no-wait"
	flagTimeout    = "timeout"
)

const (
	defaultWaitTimeout = 90 * time.Second
	metadataKey        = "services"
)

// setup loads config, applies the global flags and stores the wired services on the app
func setup(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.InitLoggerWithWriter(logger.NewConfig(c.String(flagLogLevel), logger.LogFormatText, "xivcost", version, cfg.Environment, false), os.Stderr)

	if w := c.String(flagWorld); w != "" {
		cfg.DefaultServer = w
	}
	if dc := c.String(flagDatacenter); dc != "" {
		cfg.DefaultDatacenter = dc
	}
	if l := c.String(flagLang); l != "" {
		cfg.DefaultLanguage = l
	}
	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[metadataKey] = bootstrap.BuildServices(cfg)
	return nil
}

func services(c *cli.Context) *bootstrap.Services {
	return c.App.Metadata[metadataKey].(*bootstrap.Services)
}

func newPrinter(c *cli.Context) *printer {
	return newTablePrinter(c.App.Writer, services(c).State.Snapshot().Language)
}

// emit prints v as JSON when asked and saves it to --out
func emit(c *cli.Context, v interface{}) (bool, error) {
	if out := c.String(flagOut); out != "" {
		if err := utils.SaveJSON(out, v); err != nil {
			return false, err
		}
	}
	if c.Bool(flagJSON) {
		return true, utils.EncodeJSON(c.App.Writer, v)
	}
	return false, nil
}

func itemIDArg(c *cli.Context) (int, error) {
	raw := c.Args().First()
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("item id must be a positive number, got %q: %w", raw, domain.ErrInvalidInput)
	}
	return id, nil
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search items by name",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagCategory, Aliases: []string{"c"}, Value: search.CategoryAll, Usage: "Only show this job category"},
		},
		Action: func(c *cli.Context) error {
			svc := services(c)
			query := strings.Join(c.Args().Slice(), " ")
			res, err := svc.Search.Search(c.Context, query, svc.State.Snapshot().Language)
			if err != nil {
				return err
			}
			items := search.FilterByCategory(res.Items, c.String(flagCategory))
			if done, err := emit(c, items); done || err != nil {
				return err
			}

			p := newPrinter(c)
			p.searchResults(res, items)
			return p.err
		},
	}
}

func priceCommand() *cli.Command {
	return &cli.Command{
		Name:      "price",
		Usage:     "Show unit prices for a comma separated list of item ids",
		ArgsUsage: "<id,id,...>",
		Action: func(c *cli.Context) error {
			svc := services(c)
			server := svc.State.Snapshot().Server
			if server == "" {
				return domain.ErrNoServerSelected
			}
			var ids []int
			for _, part := range strings.Split(strings.Join(c.Args().Slice(), ","), ",") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				id, err := strconv.Atoi(part)
				if err != nil {
					return fmt.Errorf("invalid item id %q: %w", part, domain.ErrInvalidInput)
				}
				ids = append(ids, id)
			}

			prices, degraded := price.SafeAggregated(c.Context, svc.Prices, ids, server)
			if done, err := emit(c, prices); done || err != nil {
				return err
			}

			p := newPrinter(c)
			p.prices(server, ids, prices, degraded)
			return p.err
		},
	}
}

func overviewCommand() *cli.Command {
	return &cli.Command{
		Name:      "overview",
		Usage:     "Show item detail and its market price",
		ArgsUsage: "<item id>",
		Action: func(c *cli.Context) error {
			id, err := itemIDArg(c)
			if err != nil {
				return err
			}
			ov, err := services(c).Crafting.Overview(c.Context, id, crafting.Options{})
			if err != nil {
				return err
			}
			if done, err := emit(c, ov); done || err != nil {
				return err
			}

			p := newPrinter(c)
			p.overview(ov)
			return p.err
		},
	}
}

func costCommand() *cli.Command {
	return &cli.Command{
		Name:      "cost",
		Usage:     "Resolve the craft cost of an item",
		ArgsUsage: "<item id>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: flagDepth, Aliases: []string{"d"}, Usage: "Sub-recipe levels to expand (0 for none, max 4; defaults to RECIPE_DEPTH)"},
			&cli.BoolFlag{Name: flagNoWait, Usage: "Print the top-level cost without waiting for sub-recipes"},
			&cli.DurationFlag{Name: flagTimeout, Value: defaultWaitTimeout, Usage: "How long to wait for sub-recipes"},
		},
		Action: func(c *cli.Context) error {
			id, err := itemIDArg(c)
			if err != nil {
				return err
			}
			opts := crafting.Options{}
			if c.IsSet(flagDepth) {
				opts.Depth = crafting.ExplicitDepth(c.Int(flagDepth))
			}

			res, err := services(c).Crafting.Resolve(c.Context, id, opts)
			if err != nil {
				return err
			}
			out := res.Top()
			if !c.Bool(flagNoWait) {
				ctx, cancel := context.WithTimeout(c.Context, c.Duration(flagTimeout))
				defer cancel()
				enriched, err := res.Wait(ctx)
				if err != nil {
					return fmt.Errorf("waiting for sub-recipes: %w", err)
				}
				out = enriched
			}
			if done, err := emit(c, out); done || err != nil {
				return err
			}

			p := newPrinter(c)
			p.resolution(out)
			return p.err
		},
	}
}

func datacentersCommand() *cli.Command {
	return &cli.Command{
		Name:  "datacenters",
		Usage: "List market datacenters",
		Action: func(c *cli.Context) error {
			dcs, err := services(c).Prices.ListDatacenters(c.Context)
			if err != nil {
				return err
			}
			if done, err := emit(c, dcs); done || err != nil {
				return err
			}

			p := newPrinter(c)
			p.datacenters(dcs)
			return p.err
		},
	}
}

func worldsCommand() *cli.Command {
	return &cli.Command{
		Name:      "worlds",
		Usage:     "List the worlds of a datacenter",
		ArgsUsage: "[datacenter]",
		Action: func(c *cli.Context) error {
			svc := services(c)
			dc := c.Args().First()
			if dc == "" {
				dc = svc.State.Snapshot().Datacenter
			}
			if dc == "" {
				return fmt.Errorf("no datacenter given: %w", domain.ErrInvalidInput)
			}
			worlds, err := svc.Prices.ListWorlds(c.Context, dc)
			if err != nil {
				return err
			}
			if done, err := emit(c, worlds); done || err != nil {
				return err
			}

			p := newPrinter(c)
			p.worlds(dc, worlds)
			return p.err
		},
	}
}
