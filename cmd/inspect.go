package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/lectio-cli/lectio/color"
	"github.com/lectio-cli/lectio/internal/cache"
	"github.com/lectio-cli/lectio/log"
	"github.com/lectio-cli/lectio/pipeline"
	"github.com/lectio-cli/lectio/source"
	"github.com/lectio-cli/lectio/style"
	"github.com/lectio-cli/lectio/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().BoolP("json", "j", false, "Print the course tree as JSON")
	inspectCmd.Flags().BoolP("deep", "d", false, "Also fetch every lesson and list its videos and attachments")
	inspectCmd.Flags().StringSliceP("module", "m", []string{}, "Only show modules matching these names")
	inspectCmd.Flags().BoolP("refresh", "r", false, "Ignore the cached outline and fetch the course again")

	inspectCmd.SetOut(os.Stdout)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [course url]",
	Short: "Show the modules and lessons of a course without downloading",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			deep    = lo.Must(cmd.Flags().GetBool("deep"))
			modules = lo.Must(cmd.Flags().GetStringSlice("module"))
			entry   = cache.Key(args[0], strconv.FormatBool(deep), strings.Join(modules, ","))
			course  = new(source.Course)
		)

		if lo.Must(cmd.Flags().GetBool("refresh")) || !cache.Read(entry, course) {
			cfg, err := pipelineConfig(args[0])
			handleErr(err)
			cfg.ModuleFilter = modules

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			course, err = pipeline.New(cfg).Inspect(ctx, deep)
			handleErr(err)

			if err := cache.Write(entry, course); err != nil {
				log.WithFields(log.Fields{"course": course.URL}).WithError(err).Warn("cache course outline")
			}
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(course))
			return
		}

		printCourse(cmd, course)
	},
}

func printCourse(cmd *cobra.Command, course *source.Course) {
	cmd.Printf("%s %s\n", style.Fg(color.HiPurple)("▇▇▇"), style.Bold(course.Name))
	cmd.Println(style.Faint(fmt.Sprintf("%s, %s",
		util.Quantify(len(course.Modules), "module", "modules"),
		util.Quantify(course.Lessons(), "lesson", "lessons"),
	)))

	for _, module := range course.Modules {
		cmd.Printf("\n%s %s\n", style.Fg(color.Yellow)(fmt.Sprintf("%d.", module.Index)), style.Bold(module.Name))

		for _, lesson := range module.Lessons {
			cmd.Printf("   %s %s\n", style.Faint(fmt.Sprintf("%d.%d", module.Index, lesson.Index)), lesson.Name)

			for _, unit := range lesson.Units {
				cmd.Printf("      %s %s\n", style.Fg(color.Cyan)(unit.String()), style.Faint(unit.VideoURL))
				for _, attachment := range unit.Attachments {
					cmd.Printf("         %s %s\n", attachment.Title, style.Faint(attachment.Path))
				}
			}
		}
	}
}

func init() {
	inspectCmd.AddCommand(inspectSchemaCmd)
}

var inspectSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the inspect --json output",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(courseSchema()))
	},
}

func courseSchema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		name := t.Name()
		switch strings.ToLower(name) {
		case "course", "module", "lesson":
			return filepath.Base(t.PkgPath()) + "." + name
		}

		return name
	}

	return reflector.Reflect(&source.Course{})
}
