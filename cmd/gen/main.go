// Command gen writes typed gorm/gen query helpers for the account tables.
package main

import (
	"flag"

	"tiktok/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	outPath := flag.String("out", "./internal/infra/persistence/rdb/query", "Output directory for the generated query package")
	flag.Parse()

	g := gen.NewGenerator(gen.Config{
		OutPath:       *outPath,
		Mode:          gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable: false,
	})

	g.ApplyBasic(model.All()...)

	g.Execute()
}
