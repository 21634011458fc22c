// Command boxer-repo runs the cached, owner-aware SchemaDocument resource
// manager and the audited schema repository it backs.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-logr/zapr"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	ctrlmetrics "sigs.k8s.io/controller-runtime/pkg/metrics"

	"github.com/sneaksanddata/boxer/api/v1beta1"
	"github.com/sneaksanddata/boxer/internal/audit"
	"github.com/sneaksanddata/boxer/internal/config"
	"github.com/sneaksanddata/boxer/internal/kuberesource"
	"github.com/sneaksanddata/boxer/internal/schemarepo"
)

var scheme = runtime.NewScheme()

func init() {
	utilruntime.Must(v1beta1.AddToScheme(scheme))
}

func main() {
	root := &cobra.Command{
		Use:   "boxer-repo",
		Short: "Boxer SchemaDocument resource manager and repository",
	}
	root.AddCommand(newServeCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newServeCommand() *cobra.Command {
	var settingsFile string
	var metricsAddr string
	var development bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the resource manager and the audited schema repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), settingsFile, metricsAddr, development)
		},
	}

	cmd.Flags().StringVar(&settingsFile, "settings-file", "",
		"path to a RepositorySettings YAML document; falls back to environment variables when unset")
	cmd.Flags().StringVar(&metricsAddr, "metrics-bind-address", ":8080",
		"address the Prometheus metrics and health endpoints bind to")
	cmd.Flags().BoolVar(&development, "development", false,
		"enable development-mode (console encoder, debug level) logging")

	return cmd
}

func serve(ctx context.Context, settingsFile string, metricsAddr string, development bool) error {
	zapLog, err := newZapLogger(development)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = zapLog.Sync() }()
	log := zapr.NewLogger(zapLog).WithName("boxer-repo")

	settings, err := loadSettings(settingsFile)
	if err != nil {
		return err
	}

	kubeconfigSource, err := settings.KubeconfigSource()
	if err != nil {
		return err
	}
	restCfg, err := kubeconfigSource.Load()
	if err != nil {
		return err
	}

	restClient, err := client.NewWithWatch(restCfg, client.Options{Scheme: scheme})
	if err != nil {
		return fmt.Errorf("building kubernetes client: %w", err)
	}

	managerCfg := kuberesource.Config{
		KubeconfigSource: kubeconfigSource,
		Namespace:        settings.Namespace,
		OwnerMark:        settings.OwnerMark(),
	}
	manager := schemarepo.NewManager(managerCfg, restClient)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := kuberesource.LoggingUpdateHandler[*v1beta1.SchemaDocument]{Log: log}
	if err := manager.Start(ctx, handler, log); err != nil {
		return fmt.Errorf("starting resource manager: %w", err)
	}
	defer manager.Stop()

	repo := schemarepo.NewRepository(manager, settings.Namespace, settings.OperationTimeout.Duration, log)
	sink := audit.NewLogSink(log)
	repository := audit.NewFacade[string, schemarepo.SchemaFragment](
		repo, sink, schemarepo.ResourceTypeName, audit.StringRecorder, recordSchemaFragment)

	// Exists never emits an audit event (§4.6 of spec.md), so this doubles
	// as a startup self-check that the cache is wired up without polluting
	// the audit log with a synthetic event.
	if _, err := repository.Exists("__boxer_startup_check__"); err != nil {
		log.V(1).Info("startup self-check returned an error", "error", err.Error())
	}

	log.Info("boxer resource repository started", "namespace", settings.Namespace)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(ctrlmetrics.Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	server := &http.Server{Addr: metricsAddr, Handler: mux}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(err, "metrics server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func loadSettings(settingsFile string) (*config.RepositorySettings, error) {
	if settingsFile != "" {
		settings, err := config.LoadSettingsFile(settingsFile)
		if err != nil {
			return nil, fmt.Errorf("loading settings from %q: %w", settingsFile, err)
		}
		return settings, nil
	}
	settings, err := config.LoadSettingsEnv()
	if err != nil {
		return nil, fmt.Errorf("loading settings from environment: %w", err)
	}
	return settings, nil
}

// recordSchemaFragment renders a SchemaFragment as the human-readable audit
// record carried in a Success result.
func recordSchemaFragment(f schemarepo.SchemaFragment) string {
	return string(f.Raw)
}

func newZapLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
