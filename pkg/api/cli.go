package api

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/mvg/pkg/api/routes"
	"github.com/travigo/mvg/pkg/cachedresults"
	"github.com/travigo/mvg/pkg/config"
	"github.com/travigo/mvg/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the MVG web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Usage: "listen target for the web server, overrides the config",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					listen := cfg.Listen
					if c.IsSet("listen") {
						listen = c.String("listen")
					}

					var cache *cachedresults.Cache
					if cfg.CacheEnabled() {
						if err := redis_client.Connect(c.Context, cfg.Redis); err != nil {
							return err
						}

						cache = cachedresults.New(redis_client.Client, cfg.CacheTTL)
						log.Info().Str("address", cfg.Redis.Address).Dur("ttl", cfg.CacheTTL).Msg("Caching reference data in Redis")
					}

					services := routes.NewServices(cfg.NewClient(), cache)

					log.Info().Str("listen", listen).Msg("Starting web API")

					return SetupServer(listen, services)
				},
			},
		},
	}
}
