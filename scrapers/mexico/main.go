package main

import (
	"log"
	"os"
	"time"

	scraper "github.com/Eitol/michelin_guide_scrapper/scrapers/mexico/src"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg, err := scraper.LoadConfig(os.Getenv("MICHELIN_CONFIG"))
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	scp := scraper.MichelinGuideScraper{
		MaxThreads: cfg.Scraping.MaxThreads,
		BaseUrl:    cfg.Scraping.BaseURL,
		UserAgent:  cfg.Scraping.UserAgent,
		Timeout:    time.Duration(cfg.Scraping.TimeoutSeconds) * time.Second,
		OutputCSV:  cfg.Scraping.Output,
	}
	stopPage := scraper.EndPage()
	if cfg.Scraping.Pages > 0 {
		stopPage = cfg.Scraping.Pages
	}
	err = scp.Scrap(
		scraper.BeginPage(),
		stopPage,
		&scraper.CachePolicy{
			UseCacheForPages: cfg.Scraping.Cache.UsePages,
			OutPath:          cfg.Scraping.Cache.OutPath,
		},
	)
	log.Print("Finish")
	if err != nil {
		log.Printf("error: %v", err)
	}
}
