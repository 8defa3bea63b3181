package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/rentkit/rentkit/internal/api"
)

type ProfileCmd struct {
	Show    ProfileShowCmd `cmd:"" default:"1" help:"Show account details"`
	Address AddressCmd     `cmd:"" help:"Manage delivery addresses"`
	KYC     KYCCmd         `cmd:"" name:"kyc" help:"Manage identity verification"`
}

type ProfileShowCmd struct{}

func (p *ProfileShowCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.newApp()
	if err != nil {
		return err
	}
	if err := app.requireSession(); err != nil {
		return err
	}

	profile, err := app.API.ProfileDetails(ctx)
	if err != nil {
		return app.apiError(err)
	}

	fmt.Printf("Name:  %s\n", profile.Name)
	fmt.Printf("Email: %s\n", profile.Email)
	fmt.Printf("Phone: %s\n", profile.Phone)

	return nil
}

type AddressCmd struct {
	List   AddressListCmd   `cmd:"" default:"1" help:"List delivery addresses"`
	Add    AddressAddCmd    `cmd:"" help:"Add a delivery address"`
	Update AddressUpdateCmd `cmd:"" help:"Update the delivery address"`
	Delete AddressDeleteCmd `cmd:"" help:"Delete the delivery address"`
}

type AddressListCmd struct{}

func (a *AddressListCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.newApp()
	if err != nil {
		return err
	}
	if err := app.requireSession(); err != nil {
		return err
	}

	addresses, err := app.API.Addresses(ctx)
	if err != nil {
		return app.apiError(err)
	}

	if len(addresses) == 0 {
		fmt.Println("No addresses on file.")
		return nil
	}

	for i, addr := range addresses {
		if i > 0 {
			fmt.Println(strings.Repeat("─", 40))
		}
		fmt.Printf("%s, %s\n", addr.FullName, addr.Contact)
		fmt.Println(addr.Address)
		if addr.NearestLandmark != "" {
			fmt.Printf("Near %s\n", addr.NearestLandmark)
		}
		fmt.Printf("%s %s\n", addr.City, addr.PostalCode)
	}

	return nil
}

// addressFields is shared by add and update; the backend keys one address
// to the user, so neither takes an address ID.
type addressFields struct {
	FullName string `help:"Recipient name" required:""`
	Contact  string `help:"Contact number" required:""`
	Address  string `help:"Street address" required:""`
	Landmark string `help:"Nearest landmark" default:""`
	Postal   string `help:"Postal code" required:""`
	City     string `help:"City" required:""`
}

func (f addressFields) toAddress() api.Address {
	return api.Address{
		FullName:        f.FullName,
		Contact:         f.Contact,
		Address:         f.Address,
		NearestLandmark: f.Landmark,
		PostalCode:      f.Postal,
		City:            f.City,
	}
}

type AddressAddCmd struct {
	addressFields `embed:""`
}

func (a *AddressAddCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.newApp()
	if err != nil {
		return err
	}
	if err := app.requireSession(); err != nil {
		return err
	}

	if err := app.API.CreateAddress(ctx, a.toAddress()); err != nil {
		return app.apiError(err)
	}

	fmt.Println("Address added")
	return nil
}

type AddressUpdateCmd struct {
	addressFields `embed:""`
}

func (a *AddressUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.newApp()
	if err != nil {
		return err
	}
	if err := app.requireSession(); err != nil {
		return err
	}

	if err := app.API.UpdateAddress(ctx, a.toAddress()); err != nil {
		return app.apiError(err)
	}

	fmt.Println("Address updated")
	return nil
}

type AddressDeleteCmd struct{}

func (a *AddressDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.newApp()
	if err != nil {
		return err
	}
	if err := app.requireSession(); err != nil {
		return err
	}

	if err := app.API.DeleteAddress(ctx); err != nil {
		return app.apiError(err)
	}

	fmt.Println("Address deleted")
	return nil
}

type KYCCmd struct {
	Show   KYCShowCmd   `cmd:"" default:"1" help:"Show identity verification status"`
	Submit KYCSubmitCmd `cmd:"" help:"Submit an identity document"`
	Delete KYCDeleteCmd `cmd:"" help:"Delete the identity verification record"`
}

type KYCShowCmd struct{}

func (k *KYCShowCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.newApp()
	if err != nil {
		return err
	}
	if err := app.requireSession(); err != nil {
		return err
	}

	kyc, err := app.API.KYCDetails(ctx)
	if err != nil {
		return app.apiError(err)
	}

	if kyc == nil {
		fmt.Println("No KYC details available.")
		return nil
	}

	fmt.Printf("Document: %s\n", kyc.IDName)
	for _, image := range kyc.ProofImages() {
		fmt.Printf("Proof:    %s\n", image)
	}

	return nil
}

type KYCSubmitCmd struct {
	IDName string `help:"Document name (e.g. Passport)" required:""`
	Image  string `arg:"" help:"Path to the proof image" type:"existingfile"`
}

func (k *KYCSubmitCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.newApp()
	if err != nil {
		return err
	}
	if err := app.requireSession(); err != nil {
		return err
	}

	if err := app.API.SubmitKYC(ctx, k.IDName, k.Image); err != nil {
		return app.apiError(err)
	}

	fmt.Println("KYC details submitted")
	return nil
}

type KYCDeleteCmd struct{}

func (k *KYCDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.newApp()
	if err != nil {
		return err
	}
	if err := app.requireSession(); err != nil {
		return err
	}

	if err := app.API.DeleteKYC(ctx); err != nil {
		return app.apiError(err)
	}

	fmt.Println("KYC record deleted")
	return nil
}
