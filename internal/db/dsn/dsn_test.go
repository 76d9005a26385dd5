package dsn

import (
	"testing"

	"github.com/evination/backoffice/internal/config"
)

func TestCreate(t *testing.T) {
	tests := []struct {
		name string
		db   config.DB
		want string
	}{
		{
			name: "mysql",
			db: config.DB{
				Engine:   config.EngineMySQL,
				Host:     "127.0.0.1",
				Port:     3306,
				User:     "backoffice",
				Password: "secret",
				Name:     "backoffice",
				Extras:   "parseTime=true",
			},
			want: "backoffice:secret@tcp(127.0.0.1:3306)/backoffice?parseTime=true",
		},
		{
			name: "postgres",
			db: config.DB{
				Engine:   config.EnginePostgres,
				Host:     "127.0.0.1",
				Port:     5432,
				User:     "backoffice",
				Password: "secret",
				Name:     "backoffice",
			},
			want: "host=127.0.0.1 port=5432 user=backoffice password=secret dbname=backoffice",
		},
		{
			name: "postgres with extras",
			db: config.DB{
				Engine:   config.EnginePostgres,
				Host:     "db",
				Port:     5432,
				User:     "u",
				Password: "p",
				Name:     "n",
				Extras:   "sslmode=disable",
			},
			want: "host=db port=5432 user=u password=p dbname=n sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Config{DB: tt.db}
			if got := Create(&cfg); got != tt.want {
				t.Errorf("Create() = %v, want %v", got, tt.want)
			}
		})
	}
}
