package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/devNatanFrei/e-commerce/internal/app"
	"github.com/devNatanFrei/e-commerce/internal/catalog"
	"github.com/devNatanFrei/e-commerce/internal/platform/db"
	"github.com/spf13/cobra"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert a demo catalog for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cfg.Debug {
				return errors.New("seed only runs with DEBUG enabled")
			}

			conn, err := db.Connect(cmd.Context(), cfg.DB)
			if err != nil {
				return fmt.Errorf("connect db: %w", err)
			}
			defer closeDB(conn)

			provider, err := app.NewProvider(cfg, conn)
			if err != nil {
				return fmt.Errorf("setup providers: %w", err)
			}
			products := catalog.NewModule(conn, &catalog.Provider{
				Cfg:       cfg,
				TxMgr:     provider.TxMgr,
				Uploader:  provider.Uploader,
				Processor: provider.Processor,
			})

			svc := products.Service()
			for _, params := range demoProducts() {
				created, err := svc.CreateProduct(cmd.Context(), params)
				if err != nil {
					// Explicit slugs make reruns skip what is already there.
					if errors.Is(err, catalog.ErrSlugTaken) {
						slog.Info("Product already seeded, skipping.", "slug", params.Slug)
						continue
					}
					return fmt.Errorf("seed product %q: %w", params.Name, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s (/products/%s)\n", created.Name, created.Slug)
			}
			return nil
		},
	}
}

func demoProducts() []catalog.SaveProductParams {
	return []catalog.SaveProductParams{
		{
			Name:             "Camiseta Slim",
			ShortDescription: "Camiseta slim de algodão penteado",
			LongDescription:  "Camiseta com corte slim em algodão penteado fio 30.1, gola reforçada.",
			Slug:             "camiseta-slim",
			Price:            59.9,
			PromoPrice:       49.9,
			Type:             catalog.TypeVariable,
			Variations: []catalog.VariationInput{
				{Name: "P", Price: 59.9, PromoPrice: 49.9, Stock: 10},
				{Name: "M", Price: 59.9, PromoPrice: 49.9, Stock: 15},
				{Name: "G", Price: 64.9, PromoPrice: 54.9, Stock: 8},
			},
		},
		{
			Name:             "Moletom Canguru",
			ShortDescription: "Moletom canguru com capuz",
			LongDescription:  "Moletom flanelado com bolso canguru, capuz com ajuste e punhos em ribana.",
			Slug:             "moletom-canguru",
			Price:            149.9,
			Type:             catalog.TypeVariable,
			Variations: []catalog.VariationInput{
				{Name: "M", Price: 149.9, Stock: 5},
				{Name: "G", Price: 149.9, Stock: 5},
			},
		},
		{
			Name:             "Caneca da Loja",
			ShortDescription: "Caneca de cerâmica 325ml",
			LongDescription:  "Caneca de cerâmica com estampa da loja, própria para micro-ondas.",
			Slug:             "caneca-da-loja",
			Price:            29.9,
			Type:             catalog.TypeSimple,
		},
	}
}
