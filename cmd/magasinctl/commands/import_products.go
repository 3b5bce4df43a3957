package commands

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/magasin-api/internal/application/dto"
	"github.com/jhoicas/magasin-api/internal/application/usecase"
	"github.com/jhoicas/magasin-api/internal/domain"
	"github.com/jhoicas/magasin-api/internal/infrastructure/postgres"
)

var (
	csvEncoding  string
	csvDelimiter string
)

var importProductsCmd = &cobra.Command{
	Use:   "import-products <archivo.csv>",
	Short: "Importa productos desde un CSV (nom;prix_achat;prix_vente;quantite)",
	Long: `Lee un CSV con cabecera nom, prix_achat, prix_vente, quantite y crea cada producto.
Los productos cuyo nombre ya existe se omiten. Acepta coma decimal ("5,50").

Las exportaciones de Excel en francés suelen venir en Latin-1 con ';' como separador:
  magasinctl import-products stock.csv --encoding latin1 --delimiter ';'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("abrir CSV: %w", err)
		}
		defer f.Close()

		rows, err := parseProductsCSV(f, csvEncoding, csvDelimiter)
		if err != nil {
			return err
		}
		return withPool(cmd.Context(), func(pool *pgxpool.Pool) error {
			uc := usecase.NewProductUseCase(postgres.NewProductRepository(pool))
			created, skipped := 0, 0
			for _, in := range rows {
				if _, err := uc.Create(cmd.Context(), in); err != nil {
					if errors.Is(err, domain.ErrConflict) {
						log.Warn().Str("nom", in.Name).Msg("producto ya existe, se omite")
						skipped++
						continue
					}
					return fmt.Errorf("producto %q: %w", in.Name, err)
				}
				created++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d productos creados, %d omitidos\n", created, skipped)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(importProductsCmd)

	importProductsCmd.Flags().StringVar(&csvEncoding, "encoding", "utf8", "Codificación del archivo: utf8, latin1 o cp1252")
	importProductsCmd.Flags().StringVar(&csvDelimiter, "delimiter", ";", "Separador de campos")
}

var productColumns = []string{"nom", "prix_achat", "prix_vente", "quantite"}

// parseProductsCSV convierte el CSV en peticiones de alta. Los errores citan la línea del archivo.
func parseProductsCSV(r io.Reader, encoding, delimiter string) ([]dto.ProductRequest, error) {
	switch strings.ToLower(encoding) {
	case "", "utf8", "utf-8":
	case "latin1", "iso-8859-1", "iso8859-1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	case "cp1252", "windows-1252":
		r = transform.NewReader(r, charmap.Windows1252.NewDecoder())
	default:
		return nil, fmt.Errorf("codificación no soportada: %s", encoding)
	}
	sep := []rune(delimiter)
	if len(sep) != 1 {
		return nil, fmt.Errorf("el separador debe ser un único carácter: %q", delimiter)
	}

	cr := csv.NewReader(r)
	cr.Comma = sep[0]
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range productColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("falta la columna %q en la cabecera", col)
		}
	}

	var out []dto.ProductRequest
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		field := func(col string) string { return strings.TrimSpace(rec[idx[col]]) }

		purchase, err := parseAmount(field("prix_achat"))
		if err != nil {
			return nil, fmt.Errorf("línea %d: prix_achat: %w", line, err)
		}
		sale, err := parseAmount(field("prix_vente"))
		if err != nil {
			return nil, fmt.Errorf("línea %d: prix_vente: %w", line, err)
		}
		qty, err := strconv.Atoi(field("quantite"))
		if err != nil {
			return nil, fmt.Errorf("línea %d: quantite: %w", line, err)
		}
		out = append(out, dto.ProductRequest{
			Name:          field("nom"),
			PurchasePrice: purchase,
			SalePrice:     sale,
			Quantity:      qty,
		})
	}
	return out, nil
}

var amountCleaner = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "", "€", "", ",", ".")

// parseAmount acepta "1 234,50 €" además de "1234.50".
func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(amountCleaner.Replace(s))
}
