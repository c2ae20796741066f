// Command extract runs the OCR pipeline over local scoreboard screenshots
// and prints the reconstructed table. Useful for checking image quality
// before uploading a batch to the service.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/youngbuffalo/scoreline/internal/ingest/csvfile"
	"github.com/youngbuffalo/scoreline/internal/ingest/screenshot"
	"github.com/youngbuffalo/scoreline/internal/ocr"
)

func main() {
	lang := flag.String("lang", "eng", "OCR language")
	asCSV := flag.Bool("csv", false, "print CSV instead of a table")
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: extract [-lang eng] [-csv] image.png [image2.png ...]")
		os.Exit(2)
	}

	ocrClient, err := ocr.New(*lang)
	if err != nil {
		log.Fatalf("initializing OCR engine: %v", err)
	}
	defer ocrClient.Close()

	images := make([][]byte, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("reading %s: %v", path, err)
		}
		images = append(images, data)
	}

	ingester := screenshot.NewIngester(ocrClient, log.New(os.Stderr, "", 0))
	extraction, err := ingester.Ingest(context.Background(), images)
	if err != nil {
		printReports(paths, extraction)
		log.Fatalf("extraction failed: %v", err)
	}

	if *asCSV {
		if err := csvfile.Write(os.Stdout, extraction.Records); err != nil {
			log.Fatalf("writing CSV: %v", err)
		}
	} else {
		printTable(extraction)
	}

	printReports(paths, extraction)
}

func printTable(extraction *screenshot.Extraction) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PLAYER\tDEFEATED\tASSIST\tDEFEATED_2\tFUN_COIN\tDAMAGE\tTANK\tHEAL\tSIEGE_DAMAGE")
	for _, rec := range extraction.Records {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
			rec.PlayerName, rec.Defeated, rec.Assist, rec.Defeated2,
			rec.FunCoin, rec.Damage, rec.Tank, rec.Heal, rec.SiegeDamage)
	}
	w.Flush()
}

func printReports(paths []string, extraction *screenshot.Extraction) {
	if extraction == nil {
		return
	}

	for _, report := range extraction.Images {
		name := fmt.Sprintf("image %d", report.ImageIndex)
		if report.ImageIndex < len(paths) {
			name = paths[report.ImageIndex]
		}

		if report.Error != "" {
			fmt.Fprintf(os.Stderr, "%s: %s\n", name, report.Error)
		}
		for _, diag := range report.Skipped {
			fmt.Fprintf(os.Stderr, "%s: skipped row %d (%s): %q\n",
				name, diag.RowIndex, diag.Reason, diag.Text)
		}
	}
}
