// Package seed loads a demo catalog so the service answers queries out
// of the box.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/goliatone/go-catalog-query/catalog"
	"github.com/goliatone/go-catalog-query/store"
)

type productRow struct {
	name        string
	description string
	price       string
	quantity    int
	category    string
}

var products = []productRow{
	// eletronicos
	{"Smartphone Galaxy S23 Ultra", "Smartphone premium com tela AMOLED 6.8\", camera 200MP e S Pen", "4999.99", 45, "eletronicos"},
	{"iPhone 15 Pro Max", "iPhone com chip A17 Pro, camera tripla 48MP e titanio", "7999.00", 30, "eletronicos"},
	{"Xiaomi Redmi Note 13", "Smartphone intermediario com camera 108MP e carregamento rapido", "1599.90", 80, "eletronicos"},
	{"MacBook Pro M3", "Notebook Apple com chip M3, 16GB RAM e SSD 512GB", "12999.00", 20, "eletronicos"},
	{"Dell XPS 15", "Notebook premium Intel i7, 32GB RAM, RTX 4060 e SSD 1TB", "9999.00", 25, "eletronicos"},
	{"Fone Sony WH-1000XM5", "Headphone premium com cancelamento de ruido lider de mercado", "1799.00", 50, "eletronicos"},
	{"JBL Flip 6", "Caixa de som portatil Bluetooth a prova d'agua", "699.00", 100, "eletronicos"},
	{"Smart TV Samsung 55\" QLED", "TV 4K QLED com taxa de atualizacao 120Hz", "3299.00", 25, "eletronicos"},
	{"Monitor Gamer AOC 27\"", "Monitor 165Hz, 1ms, Full HD ideal para jogos", "899.00", 45, "eletronicos"},
	{"Teclado Mecanico Keychron K2", "Teclado mecanico wireless com switches Gateron", "599.00", 80, "eletronicos"},
	{"Mouse Logitech MX Master 3S", "Mouse ergonomico para produtividade", "549.00", 90, "eletronicos"},
	{"Apple Watch Series 9", "Smartwatch Apple com GPS e monitoramento de saude avancado", "3999.00", 40, "eletronicos"},
	{"GoPro Hero 12 Black", "Camera de acao 5.3K com estabilizacao HyperSmooth", "2799.00", 30, "eletronicos"},
	{"SSD Externo Samsung T7", "SSD portatil 1TB com velocidade de ate 1050MB/s", "599.00", 60, "eletronicos"},

	// moda
	{"Camiseta Basica Premium", "Camiseta 100% algodao egipcio, varias cores", "79.90", 300, "moda"},
	{"Calca Jeans Skinny", "Jeans escuro com elastano, modelagem skinny", "199.00", 150, "moda"},
	{"Tenis Nike Air Max", "Tenis casual com tecnologia Air Max", "699.00", 60, "moda"},
	{"Tenis Adidas Ultraboost", "Tenis de corrida com tecnologia Boost", "799.00", 50, "moda"},
	{"Oculos de Sol Ray-Ban", "Oculos Wayfarer classico com protecao UV", "599.00", 70, "moda"},
	{"Relogio Casio G-Shock", "Relogio digital resistente a impactos", "899.00", 45, "moda"},
	{"Mochila Herschel", "Mochila urbana com compartimento para notebook", "499.00", 80, "moda"},
	{"Vestido Longo Floral", "Vestido longo estampado para verao", "229.00", 60, "moda"},

	// casa-decoracao
	{"Sofa Retratil 3 Lugares", "Sofa retratil e reclinavel em tecido suede", "2499.00", 15, "casa-decoracao"},
	{"Rack para TV 55\"", "Rack moderno com portas e prateleiras", "599.00", 30, "casa-decoracao"},
	{"Cama Box Casal", "Cama box casal com colchao de molas ensacadas", "1999.00", 20, "casa-decoracao"},
	{"Mesa de Jantar 6 Lugares", "Mesa de jantar em madeira macica com cadeiras", "1899.00", 18, "casa-decoracao"},
	{"Tapete Sala 2x3m", "Tapete decorativo antialergico", "399.00", 40, "casa-decoracao"},
	{"Luminaria de Piso", "Luminaria moderna com dimmer", "449.00", 35, "casa-decoracao"},

	// esportes
	{"Bicicleta Mountain Bike Aro 29", "Bicicleta com quadro de aluminio e 21 marchas", "1499.00", 25, "esportes"},
	{"Kit Halteres 20kg", "Par de halteres ajustaveis com anilhas", "349.00", 60, "esportes"},
	{"Bola de Futebol Oficial", "Bola de futebol de campo tamanho oficial", "149.90", 120, "esportes"},
	{"Tapete de Yoga", "Tapete antiderrapante 6mm para yoga e pilates", "89.90", 150, "esportes"},
	{"Corda de Pular Profissional", "Corda com rolamento e cabo ajustavel", "49.90", 200, "esportes"},

	// livros
	{"O Senhor dos Aneis - Box", "Trilogia completa de J.R.R. Tolkien", "149.90", 50, "livros"},
	{"1984 - George Orwell", "Classico distopico sobre totalitarismo", "49.90", 100, "livros"},
	{"Habitos Atomicos", "Como criar bons habitos e se livrar dos maus", "54.90", 120, "livros"},
	{"Clean Code", "Codigo limpo: habilidades praticas do Agile Software", "89.90", 60, "livros"},
	{"Algoritmos - Cormen", "Introducao aos algoritmos - 3a edicao", "249.00", 30, "livros"},
}

type categoryRow struct {
	name        string
	description string
	slug        string
}

var categories = []categoryRow{
	{"Eletronicos", "Produtos eletronicos e gadgets", "eletronicos"},
	{"Moda", "Roupas, calcados e acessorios", "moda"},
	{"Casa e Decoracao", "Moveis e itens para casa", "casa-decoracao"},
	{"Esportes", "Equipamentos e acessorios esportivos", "esportes"},
	{"Livros", "Livros de ficcao, tecnicos e desenvolvimento pessoal", "livros"},
}

// Load populates the stores with the demo catalog. Every product gets a
// primary image; the first product in each category also gets gallery
// images with mixed display orders.
func Load(ctx context.Context, ps *store.ProductStore, cs *store.CategoryStore, is *store.ImageStore, logger zerolog.Logger) error {
	counts := make(map[string]int, len(categories))

	seen := make(map[string]bool, len(categories))
	for _, row := range products {
		now := time.Now()
		p := catalog.Product{
			ID:          uuid.NewString(),
			Name:        row.name,
			Description: row.description,
			Price:       decimal.RequireFromString(row.price),
			Quantity:    row.quantity,
			Category:    row.category,
			Active:      true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := ps.Save(ctx, p); err != nil {
			return fmt.Errorf("seed product %q: %w", row.name, err)
		}
		counts[row.category]++

		if err := saveImages(ctx, is, p, !seen[row.category]); err != nil {
			return err
		}
		seen[row.category] = true
	}

	for i, row := range categories {
		c := catalog.Category{
			ID:           fmt.Sprintf("%d", i+1),
			Name:         row.name,
			Description:  row.description,
			Slug:         row.slug,
			ProductCount: counts[row.slug],
		}
		if err := cs.Save(ctx, c); err != nil {
			return fmt.Errorf("seed category %q: %w", row.name, err)
		}
	}

	logger.Info().
		Int("products", len(products)).
		Int("categories", len(categories)).
		Msg("demo catalog loaded")
	return nil
}

func saveImages(ctx context.Context, is *store.ImageStore, p catalog.Product, gallery bool) error {
	one, two := 1, 2
	images := []catalog.ProductImage{
		{
			ID:           uuid.NewString(),
			ProductID:    p.ID,
			URL:          fmt.Sprintf("https://images.example.com/%s/main.jpg", p.ID),
			AltText:      p.Name,
			Primary:      true,
			DisplayOrder: &one,
		},
	}
	if gallery {
		images = append(images,
			catalog.ProductImage{
				ID:           uuid.NewString(),
				ProductID:    p.ID,
				URL:          fmt.Sprintf("https://images.example.com/%s/side.jpg", p.ID),
				AltText:      p.Name + " - vista lateral",
				DisplayOrder: &two,
			},
			catalog.ProductImage{
				ID:        uuid.NewString(),
				ProductID: p.ID,
				URL:       fmt.Sprintf("https://images.example.com/%s/detail.jpg", p.ID),
				AltText:   p.Name + " - detalhe",
			},
		)
	}
	for _, img := range images {
		if err := is.Save(ctx, img); err != nil {
			return fmt.Errorf("seed image for %q: %w", p.Name, err)
		}
	}
	return nil
}
