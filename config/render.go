package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/0xPolygon/zero-coordinator/log"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/valyala/fasttemplate"
)

const (
	startTag = "{{"
	endTag   = "}}"
	// rawMark flags a var that was written unquoted (A = {{B}}) so it can be
	// unquoted again after the TOML round trip
	rawMark = ":raw"

	maxRenderPasses = 10
)

var (
	ErrCycleVars                 = errors.New("cycle vars")
	ErrMissingVars               = errors.New("missing vars")
	ErrUnsupportedConfigFileType = errors.New("unsupported config file type")

	bareVarRegexp   = regexp.MustCompile(`=\s*\{\{([^}:]+)\}\}`)
	quotedVarRegexp = regexp.MustCompile(`"\{\{([^}:]+)` + rawMark + `\}\}"`)
)

// FileData is a named piece of TOML configuration.
type FileData struct {
	Name    string
	Content string
}

// Render merges TOML fragments (later ones win) and resolves the {{VAR}}
// placeholders in them, first from the environment (PREFIX_VAR) and then from
// the values defined in the merged document.
type Render struct {
	FilesData []FileData
	Env       Environment
	EnvPrefix string
}

// NewRender returns a Render reading placeholders from env
func NewRender(filesData []FileData, env Environment, envPrefix string) *Render {
	return &Render{
		FilesData: filesData,
		Env:       env,
		EnvPrefix: envPrefix,
	}
}

// Render merges all the files and resolves the vars inside
func (r *Render) Render() (string, error) {
	merged, err := r.Merge()
	if err != nil {
		return "", fmt.Errorf("fail to merge files. Err: %w", err)
	}
	return r.ResolveVars(merged)
}

// Merge merges all the files without resolving vars
func (r *Render) Merge() (string, error) {
	k := koanf.New(".")
	for _, data := range r.FilesData {
		err := k.Load(rawbytes.Provider([]byte(quoteBareVars(data.Content))), toml.Parser())
		if err != nil {
			return "", fmt.Errorf("fail to load %s as toml. Err: %w", data.Name, err)
		}
	}
	marshaled, err := k.Marshal(toml.Parser())
	if err != nil {
		return "", fmt.Errorf("fail to marshal to toml. Err: %w", err)
	}
	return unquoteBareVars(string(marshaled)), nil
}

// ResolveVars replaces every {{VAR}} in data. Vars may point to other vars;
// a chain that doesn't settle within maxRenderPasses is reported as a cycle.
func (r *Render) ResolveVars(data string) (string, error) {
	for pass := 0; pass < maxRenderPasses; pass++ {
		if !strings.Contains(data, startTag) {
			return data, nil
		}
		tpl, err := fasttemplate.NewTemplate(data, startTag, endTag)
		if err != nil {
			return data, fmt.Errorf("fail to parse config template. Err: %w", err)
		}
		values, err := definedValues(data)
		if err != nil {
			return data, err
		}
		var missing []string
		out := tpl.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
			tag = strings.TrimSuffix(tag, rawMark)
			if v, ok := r.lookupEnv(tag); ok {
				return w.Write([]byte(v))
			}
			if v, ok := values[tag]; ok {
				return w.Write([]byte(fmt.Sprintf("%v", v)))
			}
			if !contains(missing, tag) {
				missing = append(missing, tag)
			}
			return w.Write([]byte(startTag + tag + endTag))
		})
		if len(missing) > 0 {
			return out, fmt.Errorf("missing vars: %v. Err: %w", missing, ErrMissingVars)
		}
		data = unquoteBareVars(out)
	}
	if strings.Contains(data, startTag) {
		return data, ErrCycleVars
	}
	return data, nil
}

func (r *Render) lookupEnv(tag string) (string, bool) {
	if r.Env == nil {
		return "", false
	}
	return r.Env.LookupEnv(r.EnvPrefix + "_" + strings.ReplaceAll(tag, ".", "_"))
}

// definedValues returns the flattened key/values of a partially rendered document
func definedValues(data string) (map[string]interface{}, error) {
	k := koanf.New(".")
	err := k.Load(rawbytes.Provider([]byte(quoteBareVars(data))), toml.Parser())
	if err != nil {
		return nil, fmt.Errorf("error parsing config values. Err: %w", err)
	}
	return k.All(), nil
}

func quoteBareVars(data string) string {
	return bareVarRegexp.ReplaceAllString(data, `= "{{${1}`+rawMark+`}}"`)
}

func unquoteBareVars(data string) string {
	return quotedVarRegexp.ReplaceAllString(data, `{{${1}}}`)
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func readFiles(files []string) ([]FileData, error) {
	result := make([]FileData, 0, len(files))
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("error reading file content: %s. Err:%w", file, err)
		}
		fileContent := string(content)
		fileExtension := fileExtension(file)
		if fileExtension != ConfigType {
			fileContent, err = convertFileToToml(fileContent, fileExtension)
			if err != nil {
				return nil, fmt.Errorf("error converting file: %s from %s to TOML. Err:%w", file, fileExtension, err)
			}
		}
		result = append(result, FileData{Name: file, Content: fileContent})
	}
	return result, nil
}

func fileExtension(fileName string) string {
	return fileName[strings.LastIndex(fileName, ".")+1:]
}

func convertFileToToml(fileData string, fileType string) (string, error) {
	switch strings.ToLower(fileType) {
	case "json":
		k := koanf.New(".")
		err := k.Load(rawbytes.Provider([]byte(fileData)), json.Parser())
		if err != nil {
			return fileData, fmt.Errorf("error loading json file. Err: %w", err)
		}
		tomlData, err := toml.Parser().Marshal(k.Raw())
		if err != nil {
			return fileData, fmt.Errorf("error converting json to toml. Err: %w", err)
		}
		return string(tomlData), nil
	case "yml", "yaml", "ini":
		return fileData, fmt.Errorf("cant convert from %s to TOML. Err: %w", fileType, ErrUnsupportedConfigFileType)
	default:
		log.Warnf("filetype %s unknown, assuming is a TOML file", fileType)
		return fileData, nil
	}
}
