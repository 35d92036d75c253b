package config

import (
	"time"
)

// DefaultNetwork is the shared container network every service joins.
// It must exist before any category is started; the backend creates it
// idempotently during pre-flight.
const DefaultNetwork = "microservices-net"

// GetDefaultConfig returns the stock configuration: the full category set in
// canonical startup order with the standard service definitions. User and
// project configuration files overlay this base.
func GetDefaultConfig() StackctlConfig {
	return StackctlConfig{
		GlobalSettings: GlobalSettings{
			Network:    DefaultNetwork,
			ComposeDir: "apps",
		},
		Categories: []CategoryConfig{
			{
				Name:        "database",
				Critical:    true,
				SettleDelay: 5 * time.Second,
				Services: []ServiceConfig{
					{
						ID:          "postgres",
						ComposeFile: "database/postgres.yml",
						Health: &HealthConfig{
							Type:    ProbeTypeExec,
							Command: []string{"pg_isready", "-U", "postgres"},
						},
					},
					{
						ID:          "mariadb",
						ComposeFile: "database/mariadb.yml",
						Health: &HealthConfig{
							Type:    ProbeTypeTCP,
							Address: "localhost:3306",
						},
					},
					{
						ID:          "mongodb",
						ComposeFile: "database/mongodb.yml",
						Health: &HealthConfig{
							Type:    ProbeTypeTCP,
							Address: "localhost:27017",
						},
					},
				},
			},
			{
				Name: "storage",
				Services: []ServiceConfig{
					{
						ID:          "minio",
						ComposeFile: "storage/minio.yml",
						Health: &HealthConfig{
							Type:    ProbeTypeTCP,
							Address: "localhost:9000",
						},
					},
				},
			},
			{
				Name: "dbms",
				Services: []ServiceConfig{
					{ID: "pgadmin", ComposeFile: "dbms/pgadmin.yml"},
					{ID: "phpmyadmin", ComposeFile: "dbms/phpmyadmin.yml"},
					{ID: "mongo-express", ComposeFile: "dbms/mongo-express.yml"},
				},
			},
			{
				Name:        "erp",
				SettleDelay: 10 * time.Second,
				Services: []ServiceConfig{
					{ID: "odoo", ComposeFile: "erp/odoo.yml", StartupDelay: 15 * time.Second},
				},
			},
			{
				Name: "security",
				Services: []ServiceConfig{
					{
						ID:          "vault",
						ComposeFile: "security/vault.yml",
						Health: &HealthConfig{
							Type:    ProbeTypeTCP,
							Address: "localhost:8200",
						},
					},
					{ID: "keycloak", ComposeFile: "security/keycloak.yml", StartupDelay: 20 * time.Second},
				},
			},
			{
				Name: "registry",
				Services: []ServiceConfig{
					{ID: "registry", ComposeFile: "registry/registry.yml"},
				},
			},
			{
				Name: "gateway",
				Services: []ServiceConfig{
					{ID: "kong", ComposeFile: "gateway/kong.yml"},
				},
			},
			{
				Name: "proxy",
				Services: []ServiceConfig{
					{
						ID:          "nginx",
						ComposeFile: "proxy/nginx.yml",
						Health: &HealthConfig{
							Type:    ProbeTypeTCP,
							Address: "localhost:80",
						},
					},
				},
			},
			{
				Name: "management",
				Services: []ServiceConfig{
					{ID: "portainer", ComposeFile: "management/portainer.yml"},
				},
			},
			{
				Name: "backend",
				Services: []ServiceConfig{
					{ID: "api", ComposeFile: "backend/api.yml"},
				},
			},
			{
				Name: "ci",
				Services: []ServiceConfig{
					{ID: "jenkins", ComposeFile: "ci/jenkins.yml", StartupDelay: 30 * time.Second},
				},
			},
			{
				Name: "project",
				Services: []ServiceConfig{
					{ID: "gitea", ComposeFile: "project/gitea.yml"},
				},
			},
			{
				Name: "mail",
				Services: []ServiceConfig{
					{ID: "mailpit", ComposeFile: "mail/mailpit.yml"},
				},
			},
			{
				Name: "exporters",
				Services: []ServiceConfig{
					{ID: "node-exporter", ComposeFile: "exporters/node-exporter.yml"},
					{ID: "cadvisor", ComposeFile: "exporters/cadvisor.yml"},
				},
			},
			{
				Name: "analytics",
				Services: []ServiceConfig{
					{ID: "metabase", ComposeFile: "analytics/metabase.yml", StartupDelay: 20 * time.Second},
					{ID: "grafana", ComposeFile: "analytics/grafana.yml"},
				},
			},
			{
				Name: "messaging",
				Services: []ServiceConfig{
					{
						ID:          "rabbitmq",
						ComposeFile: "messaging/rabbitmq.yml",
						Health: &HealthConfig{
							Type:    ProbeTypeExec,
							Command: []string{"rabbitmq-diagnostics", "-q", "ping"},
						},
					},
					{ID: "kafka", ComposeFile: "messaging/kafka.yml", StartupDelay: 10 * time.Second},
				},
			},
			{
				Name: "search",
				Services: []ServiceConfig{
					{
						ID:          "elasticsearch",
						ComposeFile: "search/elasticsearch.yml",
						Health: &HealthConfig{
							Type:    ProbeTypeTCP,
							Address: "localhost:9200",
						},
						StartupDelay: 15 * time.Second,
					},
				},
			},
			{
				Name: "workflow",
				Services: []ServiceConfig{
					{ID: "airflow", ComposeFile: "workflow/airflow.yml", StartupDelay: 30 * time.Second},
				},
			},
			{
				Name: "docs",
				Services: []ServiceConfig{
					{ID: "wikijs", ComposeFile: "docs/wikijs.yml"},
				},
			},
			{
				Name: "testing",
				Services: []ServiceConfig{
					{ID: "sonarqube", ComposeFile: "testing/sonarqube.yml", StartupDelay: 30 * time.Second},
				},
			},
			{
				Name: "collaboration",
				Services: []ServiceConfig{
					{ID: "mattermost", ComposeFile: "collaboration/mattermost.yml"},
				},
			},
			{
				Name: "ai",
				Services: []ServiceConfig{
					{ID: "ollama", ComposeFile: "ai/ollama.yml"},
					{ID: "open-webui", ComposeFile: "ai/open-webui.yml"},
				},
			},
			{
				Name: "support",
				Services: []ServiceConfig{
					{ID: "uptime-kuma", ComposeFile: "support/uptime-kuma.yml"},
				},
			},
		},
	}
}
