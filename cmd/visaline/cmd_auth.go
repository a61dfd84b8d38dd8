package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"visaline/internal/session"
	"visaline/internal/state"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the signed-in session",
}

var (
	loginUsername string
	loginPassword string
)

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		return current.auth.Login(cmd.Context(), state.LoginInput{
			Username: loginUsername,
			Password: loginPassword,
		})
	},
}

var registerInput state.RegisterInput

var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return current.auth.Register(cmd.Context(), registerInput)
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out locally",
	Run: func(cmd *cobra.Command, args []string) {
		current.auth.Logout()
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	Run: func(cmd *cobra.Command, args []string) {
		user := current.auth.User()
		if user == nil {
			fmt.Println(dimStyle.Render("not signed in"))
			return
		}

		fmt.Println(titleStyle.Render("Session"))
		fmt.Printf("  %s <%s> (%s)\n", user.FullName(), user.Email, user.Role)
		if claims, ok := session.ParseClaims(current.auth.Token()); ok && !claims.ExpiresAt.IsZero() {
			if time.Now().After(claims.ExpiresAt) {
				fmt.Println("  token: " + warningStyle.Render("expired "+claims.ExpiresAt.Format(time.RFC3339)))
			} else {
				fmt.Println("  token: valid until " + claims.ExpiresAt.Format(time.RFC3339))
			}
		}
	},
}

var profileInput state.UpdateProfileInput

var authUpdateProfileCmd = &cobra.Command{
	Use:   "update-profile",
	Short: "Update profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		return current.auth.UpdateProfile(cmd.Context(), profileInput)
	},
}

var changePasswordInput state.ChangePasswordInput

var authChangePasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Change the account password",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		return current.auth.ChangePassword(cmd.Context(), changePasswordInput)
	},
}

var forgotEmail string

var authForgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password",
	Short: "Request a password reset email",
	RunE: func(cmd *cobra.Command, args []string) error {
		return current.auth.ForgotPassword(cmd.Context(), forgotEmail)
	},
}

var resetInput state.ResetPasswordInput

var authResetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Reset the password with an emailed token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return current.auth.ResetPassword(cmd.Context(), resetInput)
	},
}

var authDeliveryAddressCmd = &cobra.Command{
	Use:   "delivery-address",
	Short: "Show the document delivery address",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := current.auth.FetchDeliveryAddress(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(addr)
		return nil
	},
}

func init() {
	authLoginCmd.Flags().StringVar(&loginUsername, "username", "", "account email")
	authLoginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")
	authLoginCmd.MarkFlagRequired("username")
	authLoginCmd.MarkFlagRequired("password")

	authRegisterCmd.Flags().StringVar(&registerInput.FirstName, "first-name", "", "first name")
	authRegisterCmd.Flags().StringVar(&registerInput.LastName, "last-name", "", "last name")
	authRegisterCmd.Flags().StringVar(&registerInput.Email, "email", "", "email address")
	authRegisterCmd.Flags().StringVar(&registerInput.Phone, "phone", "", "phone number")
	authRegisterCmd.Flags().StringVar(&registerInput.Password, "password", "", "password")
	authRegisterCmd.MarkFlagRequired("first-name")
	authRegisterCmd.MarkFlagRequired("email")
	authRegisterCmd.MarkFlagRequired("password")

	authUpdateProfileCmd.Flags().StringVar(&profileInput.FirstName, "first-name", "", "first name")
	authUpdateProfileCmd.Flags().StringVar(&profileInput.LastName, "last-name", "", "last name")
	authUpdateProfileCmd.Flags().StringVar(&profileInput.Phone, "phone", "", "phone number")
	authUpdateProfileCmd.Flags().StringVar(&profileInput.PhotoURL, "photo-url", "", "profile photo URL")

	authChangePasswordCmd.Flags().StringVar(&changePasswordInput.CurrentPassword, "current", "", "current password")
	authChangePasswordCmd.Flags().StringVar(&changePasswordInput.NewPassword, "new", "", "new password")
	authChangePasswordCmd.Flags().StringVar(&changePasswordInput.ConfirmPassword, "confirm", "", "new password again")
	authChangePasswordCmd.MarkFlagRequired("current")
	authChangePasswordCmd.MarkFlagRequired("new")
	authChangePasswordCmd.MarkFlagRequired("confirm")

	authForgotPasswordCmd.Flags().StringVar(&forgotEmail, "email", "", "account email")
	authForgotPasswordCmd.MarkFlagRequired("email")

	authResetPasswordCmd.Flags().StringVar(&resetInput.Token, "token", "", "reset token from the email")
	authResetPasswordCmd.Flags().StringVar(&resetInput.Password, "password", "", "new password")
	authResetPasswordCmd.Flags().StringVar(&resetInput.ConfirmPassword, "confirm", "", "new password again")
	authResetPasswordCmd.MarkFlagRequired("token")
	authResetPasswordCmd.MarkFlagRequired("password")
	authResetPasswordCmd.MarkFlagRequired("confirm")

	authCmd.AddCommand(
		authLoginCmd,
		authRegisterCmd,
		authLogoutCmd,
		authStatusCmd,
		authUpdateProfileCmd,
		authChangePasswordCmd,
		authForgotPasswordCmd,
		authResetPasswordCmd,
		authDeliveryAddressCmd,
	)
	rootCmd.AddCommand(authCmd)
}
