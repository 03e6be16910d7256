package storage

import (
	"bytes"
	"context"
	"exammaster_backend/internal/config"
	"fmt"
	"io"
	"path"
	"sync"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Provider is an object store.
type Provider interface {
	Upload(ctx context.Context, name string, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, name string) ([]byte, error)
}

// MinioProvider stores objects in a MinIO or other S3 compatible bucket.
type MinioProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioProvider(cfg *config.StorageConfig) (*MinioProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioProvider{Config: cfg, Client: client}, nil
}

func (p *MinioProvider) Upload(ctx context.Context, name string, reader io.Reader, size int64, contentType string) error {
	_, err := p.Client.PutObject(ctx, p.Config.MinioBucket, name, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (p *MinioProvider) Download(ctx context.Context, name string) ([]byte, error) {
	obj, err := p.Client.GetObject(ctx, p.Config.MinioBucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	return io.ReadAll(obj)
}

// OSSProvider stores objects in an Aliyun OSS bucket.
type OSSProvider struct {
	Config *config.StorageConfig
	Client *oss.Client
}

func NewOSSProvider(cfg *config.StorageConfig) (*OSSProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	return &OSSProvider{Config: cfg, Client: client}, nil
}

func (p *OSSProvider) Upload(ctx context.Context, name string, reader io.Reader, size int64, contentType string) error {
	bucket, err := p.Client.Bucket(p.Config.OSSBucket)
	if err != nil {
		return err
	}
	return bucket.PutObject(name, reader, oss.ContentType(contentType), oss.WithContext(ctx))
}

func (p *OSSProvider) Download(ctx context.Context, name string) ([]byte, error) {
	bucket, err := p.Client.Bucket(p.Config.OSSBucket)
	if err != nil {
		return nil, err
	}
	body, err := bucket.GetObject(name, oss.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(body)
}

// MemoryProvider keeps objects in memory. It backs tests and local runs
// without an object store.
type MemoryProvider struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{objects: make(map[string][]byte)}
}

func (p *MemoryProvider) Upload(ctx context.Context, name string, reader io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.objects[name] = data
	p.mu.Unlock()
	return nil
}

func (p *MemoryProvider) Download(ctx context.Context, name string) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	data, ok := p.objects[name]
	if !ok {
		return nil, fmt.Errorf("object %s not found", name)
	}
	return bytes.Clone(data), nil
}

const (
	TypeNone  = "none"
	TypeMinio = "minio"
	TypeOSS   = "oss"
)

// NewProvider builds the provider named by cfg.Type. It returns nil for "none".
func NewProvider(cfg *config.StorageConfig) (Provider, error) {
	switch cfg.Type {
	case TypeMinio:
		p, err := NewMinioProvider(cfg)
		if err != nil {
			return nil, err
		}
		return p, nil
	case TypeOSS:
		p, err := NewOSSProvider(cfg)
		if err != nil {
			return nil, err
		}
		return p, nil
	case TypeNone, "":
		return nil, nil
	}
	return nil, fmt.Errorf("unsupported storage type %q", cfg.Type)
}

// ReportArchive writes score reports as JSON objects named <prefix><attemptID>.json.
type ReportArchive struct {
	Provider Provider
	Prefix   string
}

func NewReportArchive(p Provider, prefix string) *ReportArchive {
	return &ReportArchive{Provider: p, Prefix: prefix}
}

func (a *ReportArchive) objectName(attemptID string) string {
	return path.Join(a.Prefix, attemptID+".json")
}

func (a *ReportArchive) Save(ctx context.Context, attemptID string, report []byte) error {
	return a.Provider.Upload(ctx, a.objectName(attemptID), bytes.NewReader(report), int64(len(report)), "application/json")
}

func (a *ReportArchive) Load(ctx context.Context, attemptID string) ([]byte, error) {
	return a.Provider.Download(ctx, a.objectName(attemptID))
}
