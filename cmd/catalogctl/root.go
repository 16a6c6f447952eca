package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/depcatalog-api/internal/infrastructure/postgres"
	"github.com/jhoicas/depcatalog-api/pkg/logger"
)

type rootOptions struct {
	verbose bool
	output  string
	log     *logger.Logger
}

func newRootCmd(connect connectFunc) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "catalogctl",
		Short:        "Administración del catálogo de dependencias y del presupuesto",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := "info"
			if opts.verbose {
				level = "debug"
			}
			opts.log = logger.NewWithWriter(cmd.ErrOrStderr(), level)
			if opts.output != "json" && opts.output != "yaml" {
				return fmt.Errorf("--output debe ser json o yaml")
			}
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "logs en nivel debug")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "json", "formato de salida: json o yaml")

	root.AddCommand(
		newImportLockfileCmd(opts, connect),
		newImportCmd(opts, connect),
		newBudgetCmd(opts, connect),
		newMigrateCmd(opts, connect),
	)
	return root
}

func newImportLockfileCmd(opts *rootOptions, connect connectFunc) *cobra.Command {
	var companyID, actorID, filename string
	cmd := &cobra.Command{
		Use:   "import-lockfile <archivo>",
		Short: "Importa los paquetes declarados en un lockfile (usar - para stdin con --filename)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, name, err := readInput(cmd.InOrStdin(), args[0], filename)
			if err != nil {
				return err
			}
			svc, closeFn, err := connect(cmd.Context(), opts.log)
			if err != nil {
				return err
			}
			defer closeFn()
			out, err := svc.importUC.ImportLockfile(cmd.Context(), companyID, actorID, content, name)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, out)
		},
	}
	cmd.Flags().StringVar(&companyID, "company", "", "ID de la empresa")
	cmd.Flags().StringVar(&actorID, "actor", "", "ID del usuario que importa (opcional)")
	cmd.Flags().StringVar(&filename, "filename", "", "nombre de archivo para detectar el dialecto (obligatorio con stdin)")
	_ = cmd.MarkFlagRequired("company")
	return cmd
}

func newImportCmd(opts *rootOptions, connect connectFunc) *cobra.Command {
	var companyID, actorID, from string
	cmd := &cobra.Command{
		Use:   "import [nombre...]",
		Short: "Importa una lista de nombres de paquetes (argumentos o --from, uno por línea)",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := append([]string(nil), args...)
			if from != "" {
				content, _, err := readInput(cmd.InOrStdin(), from, "names.txt")
				if err != nil {
					return err
				}
				names = append(names, splitLines(content)...)
			}
			svc, closeFn, err := connect(cmd.Context(), opts.log)
			if err != nil {
				return err
			}
			defer closeFn()
			out, err := svc.importUC.ImportNames(cmd.Context(), companyID, actorID, names)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, out)
		},
	}
	cmd.Flags().StringVar(&companyID, "company", "", "ID de la empresa")
	cmd.Flags().StringVar(&actorID, "actor", "", "ID del usuario que importa (opcional)")
	cmd.Flags().StringVar(&from, "from", "", "archivo con un nombre por línea (- para stdin)")
	_ = cmd.MarkFlagRequired("company")
	return cmd
}

func newBudgetCmd(opts *rootOptions, connect connectFunc) *cobra.Command {
	budgetCmd := &cobra.Command{Use: "budget", Short: "Consultas de presupuesto"}

	var companyID string
	show := &cobra.Command{
		Use:   "show",
		Short: "Muestra total, asignado y restante del presupuesto de la empresa",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeFn, err := connect(cmd.Context(), opts.log)
			if err != nil {
				return err
			}
			defer closeFn()
			out, err := svc.budgetUC.GetSummary(cmd.Context(), companyID)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, out)
		},
	}
	show.Flags().StringVar(&companyID, "company", "", "ID de la empresa")
	_ = show.MarkFlagRequired("company")
	budgetCmd.AddCommand(show)
	return budgetCmd
}

func newMigrateCmd(opts *rootOptions, connect connectFunc) *cobra.Command {
	var printOnly bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica el esquema embebido (idempotente)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if printOnly {
				_, err := io.WriteString(cmd.OutOrStdout(), postgres.Schema())
				return err
			}
			svc, closeFn, err := connect(cmd.Context(), opts.log)
			if err != nil {
				return err
			}
			defer closeFn()
			if err := svc.migrate(cmd.Context()); err != nil {
				return err
			}
			opts.log.Info().Msg("esquema aplicado")
			return nil
		},
	}
	cmd.Flags().BoolVar(&printOnly, "print", false, "solo imprime el DDL")
	return cmd
}

// readInput lee path (o stdin si es "-") y devuelve el nombre de archivo a usar para detectar el dialecto.
func readInput(stdin io.Reader, path, filename string) ([]byte, string, error) {
	if path == "-" {
		if filename == "" || filename == "-" {
			return nil, "", fmt.Errorf("--filename es obligatorio al leer de stdin")
		}
		content, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("leer stdin: %w", err)
		}
		return content, filename, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("leer %s: %w", path, err)
	}
	if filename == "" {
		filename = filepath.Base(path)
	}
	return content, filename, nil
}

// splitLines una entrada por línea; ignora líneas vacías y comentarios '#'.
func splitLines(content []byte) []string {
	var out []string
	sc := bufio.NewScanner(bytes.NewReader(content))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}

// render escribe v como JSON indentado o como YAML en bloque con el mismo orden de campos.
func render(w io.Writer, format string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if format == "json" {
		_, err = fmt.Fprintln(w, string(raw))
		return err
	}
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return err
	}
	blockStyle(&node)
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return err
	}
	return enc.Close()
}

// blockStyle quita el estilo flow heredado del JSON y las comillas de los escalares simples.
func blockStyle(n *yaml.Node) {
	n.Style &^= yaml.FlowStyle | yaml.DoubleQuotedStyle
	for _, c := range n.Content {
		blockStyle(c)
	}
}
