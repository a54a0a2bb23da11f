package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/shwikky/storefront/internal/models"
)

// Destination receives topic-keyed JSON messages: catalog snapshot rows from
// the export command and analytics events from the cart store and search
// layer.
type Destination interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

// ForConfig picks the destination the configuration asks for.
func ForConfig(cfg *models.Config) (Destination, error) {
	if cfg.KafkaEnabled {
		return NewKafkaDestination(cfg.KafkaBrokerList)
	}
	if cfg.OutputPath != "" {
		switch cfg.OutputFormat {
		case "parquet":
			return NewParquetDestination(cfg)
		case "json":
			return NewJSONDestination(cfg.OutputPath, cfg.OutputFolder), nil
		case "csv":
			return NewCSVDestination(cfg.OutputPath, cfg.OutputFolder), nil
		default:
			return nil, fmt.Errorf("unsupported output format: %s", cfg.OutputFormat)
		}
	}
	return &ConsoleDestination{}, nil
}

type ConsoleDestination struct{}

func (c *ConsoleDestination) WriteMessage(topic string, msg []byte) error {
	output := fmt.Sprintf("[%s] %s\n", topic, string(msg))
	if _, err := os.Stdout.Write([]byte(output)); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	return nil
}

func (c *ConsoleDestination) Close() error { return nil }

// JSONDestination appends one JSON line per message to a file per topic.
type JSONDestination struct {
	basePath string
	folder   string
	files    map[string]*os.File
}

func NewJSONDestination(basePath, folder string) *JSONDestination {
	return &JSONDestination{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*os.File),
	}
}

func (j *JSONDestination) WriteMessage(topic string, msg []byte) error {
	file, ok := j.files[topic]
	if !ok {
		dir := filepath.Join(j.basePath, j.folder)
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
		var err error
		file, err = os.Create(filepath.Join(dir, topic+".json"))
		if err != nil {
			return err
		}
		j.files[topic] = file
	}

	if _, err := file.Write(msg); err != nil {
		return err
	}
	_, err := file.WriteString("\n")
	return err
}

func (j *JSONDestination) Close() error {
	for _, file := range j.files {
		if err := file.Close(); err != nil {
			return err
		}
	}
	return nil
}

// CSVDestination writes one CSV file per topic. Headers come from the first
// message on the topic, sorted for stability.
type CSVDestination struct {
	basePath string
	folder   string
	files    map[string]*csv.Writer
	headers  map[string][]string
}

func NewCSVDestination(basePath, folder string) *CSVDestination {
	return &CSVDestination{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*csv.Writer),
		headers:  make(map[string][]string),
	}
}

func (c *CSVDestination) WriteMessage(topic string, msg []byte) error {
	var row map[string]interface{}
	if err := json.Unmarshal(msg, &row); err != nil {
		return err
	}

	writer, ok := c.files[topic]
	if !ok {
		dir := filepath.Join(c.basePath, c.folder)
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
		file, err := os.Create(filepath.Join(dir, topic+".csv"))
		if err != nil {
			return err
		}
		writer = csv.NewWriter(file)
		c.files[topic] = writer

		headers := make([]string, 0, len(row))
		for key := range row {
			headers = append(headers, key)
		}
		sort.Strings(headers)
		if err := writer.Write(headers); err != nil {
			return err
		}
		c.headers[topic] = headers
	}

	record := make([]string, len(c.headers[topic]))
	for i, header := range c.headers[topic] {
		value, ok := row[header]
		if !ok {
			record[i] = ""
		} else {
			record[i] = fmt.Sprintf("%v", value)
		}
	}
	if err := writer.Write(record); err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}

func (c *CSVDestination) Close() error {
	for _, writer := range c.files {
		writer.Flush()
		if err := writer.Error(); err != nil {
			return err
		}
	}
	return nil
}
