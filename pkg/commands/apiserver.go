package commands

import (
	"github.com/driftdns/resolver-dns/pkg/apiserver"
	"github.com/driftdns/resolver-dns/pkg/backend"
	"github.com/driftdns/resolver-dns/pkg/db"
	"github.com/driftdns/resolver-dns/pkg/dns"
	"github.com/driftdns/resolver-dns/pkg/version"
	"github.com/rancher/wrangler/pkg/signals"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

type apiServerCommand struct{}

func (s *apiServerCommand) Execute(c *cli.Context) error {
	ctx := signals.SetupSignalContext()

	log := logrus.WithField("command", "api-server")

	log.Infof("version: %v", version.Get())

	database, err := db.New(ctx, c.String("sql-dialect"), c.String("sql-dsn"), &gorm.Config{
		Logger: db.NewLogger(c.String("log-level")),
	})
	if err != nil {
		return err
	}

	reconciler, err := newReconciler(c)
	if err != nil {
		return err
	}

	back := backend.NewBackend(database, reconciler)

	apiServer := apiserver.NewAPIServer(ctx, log, c.Int("port"), c.String("auth-token-hash"))

	return apiServer.Start(back)
}

// newReconciler returns the Cloudflare reconciler when credentials are
// configured and the warn-and-skip variant otherwise. DNS sync is an
// optionally-enabled feature, not a startup requirement.
func newReconciler(c *cli.Context) (dns.Reconciler, error) {
	token := c.String("cloudflare-api-token")
	zoneID := c.String("cloudflare-zone-id")
	if token == "" || zoneID == "" {
		logrus.Warn("cloudflare credentials not configured, dns sync is disabled")
		return dns.NewDisabled(), nil
	}
	return dns.NewCloudflare(token, zoneID)
}

func serverCommand() *cli.Command {
	cmd := apiServerCommand{}

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:    "port",
			Usage:   "Port for the HTTP Server Port",
			EnvVars: []string{"RESOLVER_PORT", "PORT"},
			Value:   4380,
		},
		&cli.StringFlag{
			Name:    "sql-dialect",
			Usage:   "The type of sql to use, sqlite or mysql",
			EnvVars: []string{"RESOLVER_SQL_DIALECT", "SQL_DIALECT"},
			Value:   "sqlite",
		},
		&cli.StringFlag{
			Name:    "sql-dsn",
			Usage:   "The DSN to use to connect to",
			EnvVars: []string{"RESOLVER_SQL_DSN", "SQL_DSN"},
			Value:   "file:resolver.sqlite?_pragma=foreign_keys(1)",
		},
		&cli.StringFlag{
			Name:    "cloudflare-api-token",
			Usage:   "API token used to sync A-records, sync is skipped when unset",
			EnvVars: []string{"RESOLVER_CLOUDFLARE_API_TOKEN", "CLOUDFLARE_API_TOKEN"},
		},
		&cli.StringFlag{
			Name:    "cloudflare-zone-id",
			Usage:   "Zone the A-records live in, sync is skipped when unset",
			EnvVars: []string{"RESOLVER_CLOUDFLARE_ZONE_ID", "CLOUDFLARE_ZONE_ID"},
		},
		&cli.StringFlag{
			Name:    "auth-token-hash",
			Usage:   "bcrypt hash of the bearer token guarding /resolvers, API is open when unset",
			EnvVars: []string{"RESOLVER_AUTH_TOKEN_HASH", "AUTH_TOKEN_HASH"},
		},
	}

	return &cli.Command{
		Name:   "api-server",
		Usage:  "resolver registry api server",
		Action: cmd.Execute,
		Flags:  append(flags, GlobalFlags()...),
		Before: Before,
	}
}
