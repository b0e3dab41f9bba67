// Command mock_gateway serves a fake gateway control plane for local
// development: the provider and config lists come from a YAML fixture that is
// reloaded whenever the file changes.
package main

import (
	"flag"
	"net/http"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type fixture struct {
	Providers []struct {
		Slug string `yaml:"slug" json:"slug"`
		Name string `yaml:"name" json:"name"`
	} `yaml:"providers" json:"providers"`
	Configs []struct {
		ID   string `yaml:"id" json:"id"`
		Name string `yaml:"name" json:"name"`
	} `yaml:"configs" json:"configs"`
}

type fixtureStore struct {
	mu   sync.RWMutex
	data fixture
}

func (s *fixtureStore) load(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var parsed fixture
	if err = yaml.Unmarshal(raw, &parsed); err != nil {
		return err
	}
	s.mu.Lock()
	s.data = parsed
	s.mu.Unlock()
	log.WithFields(log.Fields{
		"providers": len(parsed.Providers),
		"configs":   len(parsed.Configs),
	}).Info("fixture loaded")
	return nil
}

func (s *fixtureStore) snapshot() fixture {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

func main() {
	addr := flag.String("addr", ":8787", "listen address")
	fixturePath := flag.String("fixture", "fixture.yaml", "YAML fixture with providers and configs")
	flag.Parse()

	store := &fixtureStore{}
	if err := store.load(*fixturePath); err != nil {
		log.WithError(err).Fatal("load fixture")
	}
	go watchFixture(store, *fixturePath)

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()
	router.Use(requireAPIKey)

	router.GET("/v1/providers", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": store.snapshot().Providers})
	})
	router.GET("/v1/configs", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": store.snapshot().Configs})
	})

	log.WithField("addr", *addr).Info("mock gateway listening")
	if err := router.Run(*addr); err != nil {
		log.WithError(err).Fatal("serve")
	}
}

func requireAPIKey(c *gin.Context) {
	if c.GetHeader("x-portkey-api-key") == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing x-portkey-api-key"})
		return
	}
	c.Next()
}

func watchFixture(store *fixtureStore, path string) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.WithError(err).Warn("fixture watch unavailable")
		return
	}
	defer func() { _ = watcher.Close() }()
	if err = watcher.Add(path); err != nil {
		log.WithError(err).Warn("fixture watch unavailable")
		return
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err = store.load(path); err != nil {
				log.WithError(err).Warn("fixture reload failed")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warn("fixture watch error")
		}
	}
}
