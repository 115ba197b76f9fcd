package lookup

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/travigo/mvg/pkg/config"
	"github.com/travigo/mvg/pkg/filter"
	"github.com/travigo/mvg/pkg/mvg"
	"github.com/travigo/mvg/pkg/output"
	"github.com/travigo/mvg/pkg/util"
	"github.com/urfave/cli/v2"
)

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   string(output.FormatJSON),
		Usage:   "output format: json, yaml, pretty or csv",
	}
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "lookup",
		Usage: "Query the MVG API from the command line",
		Subcommands: []*cli.Command{
			{
				Name:      "station",
				Usage:     "find the first station matching a name or address",
				ArgsUsage: "<query>",
				Flags:     []cli.Flag{formatFlag()},
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 {
						return errors.New("a station query is required")
					}

					client, err := newClient(c)
					if err != nil {
						return err
					}

					station, err := client.StationQuery(c.Context, c.Args().First())
					if err != nil {
						return err
					}
					if station == nil {
						return fmt.Errorf("no station found matching %q", c.Args().First())
					}

					return write(c, station)
				},
			},
			{
				Name:      "nearby",
				Usage:     "find the station closest to a coordinate",
				ArgsUsage: "<latitude> <longitude>",
				Flags:     []cli.Flag{formatFlag()},
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return errors.New("latitude and longitude are required")
					}

					latitude, err := strconv.ParseFloat(c.Args().Get(0), 64)
					if err != nil {
						return fmt.Errorf("invalid latitude: %w", err)
					}
					longitude, err := strconv.ParseFloat(c.Args().Get(1), 64)
					if err != nil {
						return fmt.Errorf("invalid longitude: %w", err)
					}

					client, err := newClient(c)
					if err != nil {
						return err
					}

					station, err := client.Nearby(c.Context, latitude, longitude)
					if err != nil {
						return err
					}
					if station == nil {
						return errors.New("no station found nearby")
					}

					return write(c, station)
				},
			},
			{
				Name:      "departures",
				Usage:     "list the next departures at a station id or station name",
				ArgsUsage: "<station>",
				Flags: []cli.Flag{
					formatFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Value: mvg.DefaultLimit,
						Usage: "number of departures",
					},
					&cli.StringFlag{
						Name:  "offset",
						Value: "0",
						Usage: "skip departures in the next minutes, as minutes or an ISO8601 duration (PT5M)",
					},
					&cli.StringFlag{
						Name:  "types",
						Usage: "comma separated transport types, eg. UBAHN,SBAHN",
					},
					&cli.StringFlag{
						Name:  "filter",
						Usage: "expression every returned departure must match, eg. 'type == \"U-Bahn\"'",
					},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 {
						return errors.New("a station is required")
					}

					options := mvg.DepartureOptions{
						Limit: c.Int("limit"),
					}

					offset, err := util.ParseOffsetMinutes(c.String("offset"))
					if err != nil {
						return err
					}
					options.Offset = offset

					if c.String("types") != "" {
						if options.TransportTypes, err = mvg.ParseTransportTypes(c.String("types")); err != nil {
							return err
						}
					}

					var departureFilter *filter.DepartureFilter
					if c.String("filter") != "" {
						if departureFilter, err = filter.CompileDepartureFilter(c.String("filter")); err != nil {
							return err
						}
					}

					client, err := newClient(c)
					if err != nil {
						return err
					}

					station, err := client.ForStation(c.Context, c.Args().First())
					if err != nil {
						return err
					}

					departures, err := station.Departures(c.Context, options)
					if err != nil {
						return err
					}

					departures, err = departureFilter.Apply(departures)
					if err != nil {
						return err
					}

					return write(c, departures)
				},
			},
			{
				Name:      "lines",
				Usage:     "list the lines serving a station, or every line when no station is given",
				ArgsUsage: "[station id]",
				Flags:     []cli.Flag{formatFlag()},
				Action: func(c *cli.Context) error {
					client, err := newClient(c)
					if err != nil {
						return err
					}

					lines, err := client.Lines(c.Context, c.Args().First())
					if err != nil {
						return err
					}

					return write(c, lines)
				},
			},
			{
				Name:  "stations",
				Usage: "dump the full station catalogue",
				Flags: []cli.Flag{formatFlag()},
				Action: func(c *cli.Context) error {
					client, err := newClient(c)
					if err != nil {
						return err
					}

					stations, err := client.Stations(c.Context)
					if err != nil {
						return err
					}

					return write(c, stations)
				},
			},
			{
				Name:  "station-ids",
				Usage: "list every known global station id",
				Flags: []cli.Flag{formatFlag()},
				Action: func(c *cli.Context) error {
					client, err := newClient(c)
					if err != nil {
						return err
					}

					stationIDs, err := client.StationIDs(c.Context)
					if err != nil {
						return err
					}

					return write(c, stationIDs)
				},
			},
			{
				Name:  "messages",
				Usage: "list the current service messages",
				Flags: []cli.Flag{formatFlag()},
				Action: func(c *cli.Context) error {
					client, err := newClient(c)
					if err != nil {
						return err
					}

					messages, err := client.Messages(c.Context)
					if err != nil {
						return err
					}

					return write(c, messages)
				},
			},
			{
				Name:      "validate",
				Usage:     "check a global station id",
				ArgsUsage: "<station id>",
				Flags: []cli.Flag{
					formatFlag(),
					&cli.BoolFlag{
						Name:  "exists",
						Usage: "also check the id against the list of known stations",
					},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return errors.New("a station id is required")
					}

					stationID := c.Args().First()
					result := validation{
						StationID: stationID,
						Valid:     mvg.ValidStationID(stationID),
					}

					if c.Bool("exists") {
						client, err := newClient(c)
						if err != nil {
							return err
						}

						exists, err := client.StationIDExists(c.Context, stationID)
						if err != nil {
							return err
						}
						result.Exists = &exists
					}

					return write(c, result)
				},
			},
		},
	}
}

type validation struct {
	StationID string `json:"station_id" yaml:"station_id"`
	Valid     bool   `json:"valid" yaml:"valid"`
	Exists    *bool  `json:"exists,omitempty" yaml:"exists,omitempty"`
}

func newClient(c *cli.Context) (*mvg.Client, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	return cfg.NewClient(), nil
}

func write(c *cli.Context, value any) error {
	format, err := output.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}

	return output.Write(c.App.Writer, format, value)
}
